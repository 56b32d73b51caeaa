package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubesync"
)

// Message types. Clients send the request types; the server answers with
// state, solution or error.
const (
	MsgTypeMove         = "move"
	MsgTypeScan         = "scan"
	MsgTypeCompleteScan = "complete_scan"
	MsgTypeScramble     = "scramble"
	MsgTypeSolve        = "solve"
	MsgTypeReset        = "reset"

	MsgTypeState    = "state"
	MsgTypeSolution = "solution"
	MsgTypeError    = "error"
)

// Request is any client message. Only the fields of its type are read.
type Request struct {
	Type   string   `json:"type"`
	Moves  string   `json:"moves,omitempty"`  // move
	Face   string   `json:"face,omitempty"`   // scan
	Colors []string `json:"colors,omitempty"` // scan
	Length int      `json:"length,omitempty"` // scramble
	Seed   *int64   `json:"seed,omitempty"`   // scramble
	Apply  bool     `json:"apply,omitempty"`  // solve
}

// StateMessage is broadcast to every client after each change.
type StateMessage struct {
	Type     string   `json:"type"`
	Facelets string   `json:"facelets"`
	Solved   bool     `json:"solved"`
	History  string   `json:"history"`
	Scanned  []string `json:"scanned"`
}

// SolutionMessage answers a solve request.
type SolutionMessage struct {
	Type     string `json:"type"`
	Facelets string `json:"facelets"`
	Moves    string `json:"moves"`
	Applied  bool   `json:"applied"`
}

// ErrorMessage answers a request that failed. Rescan is set when the user
// should scan the cube again.
type ErrorMessage struct {
	Type    string `json:"type"`
	Request string `json:"request"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
	Rescan  bool   `json:"rescan"`
}

func stateMessage(s *cubesync.Session) StateMessage {
	snap := s.Export()
	scanned := make([]string, 0, len(snap.Scanned))
	for _, f := range snap.Scanned {
		scanned = append(scanned, f.String())
	}
	return StateMessage{
		Type:     MsgTypeState,
		Facelets: cubesync.EncodeUnchecked(snap.Current),
		Solved:   snap.Current.IsSolved(),
		History:  cubesync.FormatMoves(snap.Moves),
		Scanned:  scanned,
	}
}

func errorMessage(request string, err error) ErrorMessage {
	return ErrorMessage{
		Type:    MsgTypeError,
		Request: request,
		Kind:    errorKind(err),
		Error:   err.Error(),
		Rescan:  cubesync.IsRescanRequired(err),
	}
}

var errUnknownType = errors.New("unknown message type")

// errorKind names the class of err for clients and metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, cubesync.ErrParse):
		if errors.Is(err, cubesync.ErrOracle) {
			return "oracle"
		}
		return "parse"
	case errors.Is(err, cubesync.ErrValidation):
		return "validation"
	case errors.Is(err, cubesync.ErrFormat):
		return "format"
	case errors.Is(err, cubesync.ErrComposition):
		return "composition"
	case errors.Is(err, cubesync.ErrOracle):
		return "oracle"
	case errors.Is(err, cubesync.ErrTurnInFlight):
		return "in_flight"
	case errors.Is(err, cubesync.ErrNoOracle):
		return "no_oracle"
	case errors.Is(err, cubesync.ErrSolverLimit):
		return "solver_limit"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, cubesync.ErrScanIncomplete):
		return "scan_incomplete"
	case errors.Is(err, cubesync.ErrStaleSolution):
		return "stale"
	case errors.Is(err, errUnknownType), errors.Is(err, errMalformed):
		return "bad_request"
	default:
		return "internal"
	}
}

// parseScan converts the wire form of a face scan.
func parseScan(req Request) (cubesync.Face, []cubesync.Color, error) {
	face, ok := cubesync.ParseFace(req.Face)
	if !ok {
		return 0, nil, &cubesync.ValidationError{Reason: fmt.Sprintf("unknown face %q", req.Face)}
	}
	colors := make([]cubesync.Color, 0, len(req.Colors))
	for _, name := range req.Colors {
		c, ok := cubesync.ParseColor(name)
		if !ok {
			return 0, nil, &cubesync.ValidationError{Face: face, Reason: fmt.Sprintf("unknown color %q", name)}
		}
		colors = append(colors, c)
	}
	return face, colors, nil
}
