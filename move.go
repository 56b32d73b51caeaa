package cubesync

import (
	"strings"
)

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise quarter turn
	CCW    Turn = -1 // Counter-clockwise quarter turn
	Double Turn = 2  // Half turn
)

// Move is a single face turn. Moves are plain values.
type Move struct {
	Face Face // Which face to turn
	Turn Turn // Direction and amount
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face.Letter()) + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// Valid reports whether the move names a real face and turn.
func (m Move) Valid() bool {
	return m.Face.Valid() && (m.Turn == CW || m.Turn == CCW || m.Turn == Double)
}

// quarterTurns returns the number of clockwise quarter turns m amounts to.
func (m Move) quarterTurns() int {
	switch m.Turn {
	case CCW:
		return 3
	case Double:
		return 2
	default:
		return 1
	}
}

// Index encodes the move as a single value in 0..17: face*3 + turn slot
// (0 = CW, 1 = CCW, 2 = Double).
func (m Move) Index() int {
	slot := 0
	switch m.Turn {
	case CCW:
		slot = 1
	case Double:
		slot = 2
	}
	return int(m.Face)*3 + slot
}

// MoveFromIndex is the inverse of Move.Index.
func MoveFromIndex(i int) (Move, bool) {
	if i < 0 || i >= 18 {
		return Move{}, false
	}
	turns := [3]Turn{CW, CCW, Double}
	return Move{Face: Face(i / 3), Turn: turns[i%3]}, true
}

// ParseMove parses one move token. The first character must be one of
// U D L R F B and the remainder one of "", "'" or "2".
func ParseMove(s string) (Move, error) {
	if len(s) == 0 {
		return Move{}, &ParseError{Token: s}
	}

	face, ok := faceFromLetter(s[0])
	if !ok {
		return Move{}, &ParseError{Token: s}
	}

	turn := CW
	switch s[1:] {
	case "":
	case "'":
		turn = CCW
	case "2":
		turn = Double
	default:
		return Move{}, &ParseError{Token: s}
	}

	return Move{Face: face, Turn: turn}, nil
}

// MustParseMove is like ParseMove but panics on a bad token.
// Intended for package-level tables.
func MustParseMove(s string) Move {
	m, err := ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoves parses a whitespace-separated sequence of moves.
// Example: "R U R' U'". The first malformed token fails the whole sequence.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InvertMoves returns the sequence that undoes moves.
func InvertMoves(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}
