package cubesync

import "context"

// Oracle is an external solver. It receives a validated 54-character
// facelet string and returns a space-separated move sequence that brings
// that state back to solved, or an error when the state is unsolvable or
// malformed. Implementations live outside the core; see internal/oracle.
type Oracle interface {
	Solve(ctx context.Context, facelets string) (string, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(ctx context.Context, facelets string) (string, error)

// Solve calls f.
func (f OracleFunc) Solve(ctx context.Context, facelets string) (string, error) {
	return f(ctx, facelets)
}
