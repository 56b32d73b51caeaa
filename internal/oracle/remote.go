package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubesync"
)

// SolveRequest is the body sent to a remote solver.
type SolveRequest struct {
	Facelets string `json:"facelets"`
}

// SolveResponse is the body returned by a remote solver. Exactly one of
// the fields is set.
type SolveResponse struct {
	Solution string `json:"solution,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Remote calls an external solver service at Base + "/solve".
type Remote struct {
	Base string
	HTTP *http.Client
}

// NewRemote creates a client for the solver at base. A zero timeout leaves
// the deadline to the caller's context.
func NewRemote(base string, timeout time.Duration) *Remote {
	return &Remote{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Timeout: timeout},
	}
}

// Solve implements cubesync.Oracle.
func (c *Remote) Solve(ctx context.Context, facelets string) (string, error) {
	var out SolveResponse
	if err := c.post(ctx, "/solve", SolveRequest{Facelets: facelets}, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("remote solver: %s", out.Error)
	}
	return out.Solution, nil
}

func (c *Remote) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		// Solvers report rejected states in the body even on 4xx.
		var failure SolveResponse
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(body, &failure) == nil && failure.Error != "" {
			return fmt.Errorf("remote solver post %s: %s: %s", path, resp.Status, failure.Error)
		}
		return fmt.Errorf("remote solver post %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ cubesync.Oracle = (*Remote)(nil)
