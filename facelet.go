package cubesync

import "fmt"

// The facelet string lists the stickers of Top, Right, Front, Bottom, Left
// and Back in that order, nine per face in index order. Each sticker is
// written as the letter of the face whose solved center has that color,
// whatever face the sticker currently sits on.
const faceletAlphabet = "URFDLB"

// SolvedFacelets is the facelet string of a solved cube.
const SolvedFacelets = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

func colorToLetter(c Color) byte {
	switch c {
	case White:
		return 'U'
	case Blue:
		return 'R'
	case Red:
		return 'F'
	case Yellow:
		return 'D'
	case Green:
		return 'L'
	case Orange:
		return 'B'
	default:
		return '?'
	}
}

func letterToColor(b byte) (Color, bool) {
	switch b {
	case 'U':
		return White, true
	case 'R':
		return Blue, true
	case 'F':
		return Red, true
	case 'D':
		return Yellow, true
	case 'L':
		return Green, true
	case 'B':
		return Orange, true
	default:
		return 0, false
	}
}

// EncodeUnchecked serializes the cube without the composition check.
// Useful for showing a half-scanned cube; never hand its result to a solver.
func EncodeUnchecked(state *Cube) string {
	buf := make([]byte, 0, FaceletSize)
	for _, face := range AllFaces() {
		for _, c := range state.Facelets[face] {
			buf = append(buf, colorToLetter(c))
		}
	}
	return string(buf)
}

// Encode serializes the cube into the 54-character solver string. It fails
// with a CompositionError unless each letter appears exactly nine times.
func Encode(state *Cube) (string, error) {
	s := EncodeUnchecked(state)
	if err := checkComposition(s); err != nil {
		return "", err
	}
	return s, nil
}

// Decode parses a facelet string back into a cube. Only the format is
// checked; use Validate to also check composition.
func Decode(s string) (*Cube, error) {
	if len(s) != FaceletSize {
		return nil, &FormatError{Facelets: s, Reason: fmt.Sprintf("length %d, want %d", len(s), FaceletSize)}
	}

	var stickers [FaceletSize]Color
	for i := 0; i < len(s); i++ {
		c, ok := letterToColor(s[i])
		if !ok {
			return nil, &FormatError{Facelets: s, Reason: fmt.Sprintf("character %q at position %d is not one of %s", s[i], i, faceletAlphabet)}
		}
		stickers[i] = c
	}
	return fromFlat(stickers), nil
}

// Validate checks format and composition of a facelet string. Passing it is
// necessary but not sufficient for the state to be solvable; parity and
// orientation are left to the solver.
func Validate(s string) error {
	if _, err := Decode(s); err != nil {
		return err
	}
	return checkComposition(s)
}

func checkComposition(s string) error {
	counts := make(map[byte]int, 6)
	for i := 0; i < len(s); i++ {
		counts[s[i]]++
	}
	for i := 0; i < len(faceletAlphabet); i++ {
		if counts[faceletAlphabet[i]] != FaceSize {
			return &CompositionError{Facelets: s, Counts: counts}
		}
	}
	return nil
}
