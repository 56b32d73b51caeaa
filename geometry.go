package cubesync

import "fmt"

// Sticker layout.
//
// Every face is read row-major from the viewer's top-left while looking
// squarely at it from outside the cube:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The viewing orientation of each face is fixed:
//
//   - Top: seen from above with the Back edge at the top of the view.
//   - Bottom: seen from below with the Front edge at the top of the view.
//   - Front, Right, Back, Left: seen from outside with Top at the top of the view.
//
// The permutation tables in engine.go are written against this layout and
// must be regenerated if it ever changes. Index 4 is the center.
const (
	FaceSize    = 9
	FaceletSize = 6 * FaceSize
	CenterIndex = 4
)

// Index returns the linear sticker index for a row and column in 0..2.
func Index(row, col int) (int, error) {
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return 0, &ValidationError{Reason: fmt.Sprintf("grid position (%d,%d) out of range", row, col)}
	}
	return row*3 + col, nil
}

// Position returns the row and column of a linear sticker index.
func Position(index int) (row, col int, err error) {
	if index < 0 || index >= FaceSize {
		return 0, 0, &ValidationError{Reason: fmt.Sprintf("sticker index %d out of range", index)}
	}
	return index / 3, index % 3, nil
}

// Neighbors returns the four faces around f in clockwise order as seen from
// outside f, starting with the face at the top of f's canonical view.
func Neighbors(f Face) [4]Face {
	switch f {
	case Top:
		return [4]Face{Back, Right, Front, Left}
	case Bottom:
		return [4]Face{Front, Right, Back, Left}
	case Front:
		return [4]Face{Top, Right, Bottom, Left}
	case Back:
		return [4]Face{Top, Left, Bottom, Right}
	case Right:
		return [4]Face{Top, Back, Bottom, Front}
	case Left:
		return [4]Face{Top, Front, Bottom, Back}
	default:
		return [4]Face{}
	}
}

// Opposite returns the face across the cube from f.
func Opposite(f Face) Face {
	return (f + 3) % 6
}

// facelet returns the position of a sticker in the flat URFDLB layout.
func facelet(f Face, index int) int {
	return int(f)*FaceSize + index
}
