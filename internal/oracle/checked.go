package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubesync"
)

// ErrWrongSolution is returned when a solver's reply does not solve the
// state it was given.
var ErrWrongSolution = errors.New("oracle: reply does not solve the cube")

// Checked wraps an oracle so that it is only ever called with a valid
// facelet string and only ever returns a sequence that parses and solves
// the state.
type Checked struct {
	Next cubesync.Oracle
}

// NewChecked wraps next.
func NewChecked(next cubesync.Oracle) *Checked {
	return &Checked{Next: next}
}

// Solve implements cubesync.Oracle.
func (c *Checked) Solve(ctx context.Context, facelets string) (string, error) {
	if err := cubesync.Validate(facelets); err != nil {
		return "", err
	}

	reply, err := c.Next.Solve(ctx, facelets)
	if err != nil {
		return "", err
	}

	moves, err := cubesync.ParseMoves(reply)
	if err != nil {
		return "", fmt.Errorf("oracle reply %q: %w", reply, err)
	}

	start, err := cubesync.Decode(facelets)
	if err != nil {
		return "", err
	}
	if !cubesync.ApplyAll(start, moves).IsSolved() {
		return "", fmt.Errorf("%w: %q", ErrWrongSolution, reply)
	}

	return cubesync.FormatMoves(cubesync.Simplify(moves)), nil
}

var _ cubesync.Oracle = (*Checked)(nil)
