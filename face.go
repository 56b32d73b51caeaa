package cubesync

import "strings"

// Face identifies one side of the cube.
//
// Faces are declared in URFDLB order so that face*9+index is the position of
// a sticker inside the facelet string.
type Face int

const (
	Top    Face = 0 // Up
	Right  Face = 1 // Right
	Front  Face = 2 // Front
	Bottom Face = 3 // Down
	Left   Face = 4 // Left
	Back   Face = 5 // Back
)

// AllFaces returns the faces in URFDLB order.
func AllFaces() []Face {
	return []Face{Top, Right, Front, Bottom, Left, Back}
}

// Letter returns the move-notation letter of the face.
func (f Face) Letter() byte {
	switch f {
	case Top:
		return 'U'
	case Right:
		return 'R'
	case Front:
		return 'F'
	case Bottom:
		return 'D'
	case Left:
		return 'L'
	case Back:
		return 'B'
	default:
		return '?'
	}
}

func (f Face) String() string {
	switch f {
	case Top:
		return "top"
	case Right:
		return "right"
	case Front:
		return "front"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Back:
		return "back"
	default:
		return "unknown"
	}
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= Top && f <= Back
}

// SolvedColor returns the color every sticker of f shows on a solved cube.
func (f Face) SolvedColor() Color {
	switch f {
	case Top:
		return White
	case Bottom:
		return Yellow
	case Front:
		return Red
	case Back:
		return Orange
	case Left:
		return Green
	case Right:
		return Blue
	default:
		return White
	}
}

// faceFromLetter maps a notation letter to its face.
func faceFromLetter(b byte) (Face, bool) {
	switch b {
	case 'U':
		return Top, true
	case 'R':
		return Right, true
	case 'F':
		return Front, true
	case 'D':
		return Bottom, true
	case 'L':
		return Left, true
	case 'B':
		return Back, true
	default:
		return 0, false
	}
}

// ParseFace accepts a face name ("front") or its notation letter ("F").
func ParseFace(s string) (Face, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return faceFromLetter(strings.ToUpper(s)[0])
	}
	switch strings.ToLower(s) {
	case "top", "up":
		return Top, true
	case "right":
		return Right, true
	case "front":
		return Front, true
	case "bottom", "down":
		return Bottom, true
	case "left":
		return Left, true
	case "back":
		return Back, true
	default:
		return 0, false
	}
}
