package cubesync

import (
	"errors"
	"fmt"
)

// Sentinel errors for the cubesync package.
var (
	// Boundary errors: the caller handed in malformed input.
	ErrParse      = errors.New("cubesync: invalid move notation")
	ErrValidation = errors.New("cubesync: invalid face scan")
	ErrFormat     = errors.New("cubesync: malformed facelet string")

	// Expected outcomes of a bad scan; the user should rescan.
	ErrComposition = errors.New("cubesync: facelet composition invalid")
	ErrOracle      = errors.New("cubesync: solver failed")

	// Session errors
	ErrTurnInFlight   = errors.New("cubesync: a turn is already in flight")
	ErrNoOracle       = errors.New("cubesync: no solver configured")
	ErrScanIncomplete = errors.New("cubesync: not every face has been scanned")

	// The solver stopped at its own limits. The scan may be fine.
	ErrSolverLimit = errors.New("cubesync: solver gave up before finding a solution")
)

// ParseError reports a malformed move token.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cubesync: invalid move notation %q", e.Token)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// ValidationError reports a face scan or grid position that cannot be used.
type ValidationError struct {
	Face   Face
	Reason string
}

func (e *ValidationError) Error() string {
	return "cubesync: invalid face scan: " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// FormatError reports a facelet string of the wrong length or alphabet.
type FormatError struct {
	Facelets string
	Reason   string
}

func (e *FormatError) Error() string {
	return "cubesync: malformed facelet string: " + e.Reason
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// CompositionError reports a facelet string that does not hold every color
// exactly nine times. Counts is indexed by the URFDLB letter.
type CompositionError struct {
	Facelets string
	Counts   map[byte]int
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("cubesync: facelet composition invalid (U=%d R=%d F=%d D=%d L=%d B=%d), rescan required",
		e.Counts['U'], e.Counts['R'], e.Counts['F'], e.Counts['D'], e.Counts['L'], e.Counts['B'])
}

func (e *CompositionError) Unwrap() error { return ErrComposition }

// OracleFailure reports that the solver rejected the state or failed to
// produce a usable move sequence.
type OracleFailure struct {
	Facelets string
	Err      error
}

func (e *OracleFailure) Error() string {
	if e.Err == nil {
		return "cubesync: solver failed, rescan required"
	}
	return "cubesync: solver failed: " + e.Err.Error()
}

func (e *OracleFailure) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrOracle}
	}
	return []error{ErrOracle, e.Err}
}

// IsRescanRequired reports whether err is a user-actionable scan problem
// rather than a programming error. A solver that ran out of depth or time
// does not count.
func IsRescanRequired(err error) bool {
	return errors.Is(err, ErrComposition) || errors.Is(err, ErrOracle)
}
