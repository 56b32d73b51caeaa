package cubesync

import (
	"fmt"
	"strings"
)

// Cube holds the color of all 54 stickers.
// Facelets[face][index] follows the layout documented in geometry.go.
//
// A Cube is not safe for concurrent use; Session serializes access for
// hosts that take input from more than one goroutine.
type Cube struct {
	Facelets [6][9]Color
}

// NewCube creates a solved cube: white on top, red in front, blue on the right.
func NewCube() *Cube {
	c := &Cube{}
	c.Reset()
	return c
}

// Reset returns the cube to the solved configuration.
func (c *Cube) Reset() {
	for _, face := range AllFaces() {
		color := face.SolvedColor()
		for i := 0; i < FaceSize; i++ {
			c.Facelets[face][i] = color
		}
	}
}

// Get returns a copy of the nine stickers of a face.
func (c *Cube) Get(face Face) [9]Color {
	return c.Facelets[face]
}

// SetFace overwrites the nine stickers of a face, as a camera scan does.
// Only the length is checked; the cube is left untouched on error.
func (c *Cube) SetFace(face Face, colors []Color) error {
	if !face.Valid() {
		return &ValidationError{Face: face, Reason: fmt.Sprintf("unknown face %d", int(face))}
	}
	if len(colors) != FaceSize {
		return &ValidationError{Face: face, Reason: fmt.Sprintf("%s face needs %d colors, got %d", face, FaceSize, len(colors))}
	}
	copy(c.Facelets[face][:], colors)
	return nil
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// Equal reports whether both cubes show the same colors everywhere.
func (c *Cube) Equal(other *Cube) bool {
	if other == nil {
		return false
	}
	return c.Facelets == other.Facelets
}

// IsSolved returns true if every face shows a single color.
func (c *Cube) IsSolved() bool {
	for face := range c.Facelets {
		first := c.Facelets[face][0]
		for i := 1; i < FaceSize; i++ {
			if c.Facelets[face][i] != first {
				return false
			}
		}
	}
	return true
}

// ColorCounts returns how many stickers show each color.
func (c *Cube) ColorCounts() map[Color]int {
	counts := make(map[Color]int, 6)
	for face := range c.Facelets {
		for _, color := range c.Facelets[face] {
			counts[color]++
		}
	}
	return counts
}

// flat returns the stickers in URFDLB order.
func (c *Cube) flat() [FaceletSize]Color {
	var out [FaceletSize]Color
	for face := range c.Facelets {
		copy(out[face*FaceSize:], c.Facelets[face][:])
	}
	return out
}

// fromFlat builds a cube from stickers in URFDLB order.
func fromFlat(stickers [FaceletSize]Color) *Cube {
	c := &Cube{}
	for face := range c.Facelets {
		copy(c.Facelets[face][:], stickers[face*FaceSize:(face+1)*FaceSize])
	}
	return c
}

// String returns the cube unfolded as a cross:
//
//	      U
//	    L F R B
//	      D
func (c *Cube) String() string {
	var b strings.Builder

	writeRow := func(face Face, row int) {
		for col := 0; col < 3; col++ {
			b.WriteString(c.Facelets[face][row*3+col].Char())
			b.WriteByte(' ')
		}
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(Top, row)
		b.WriteByte('\n')
	}

	for row := 0; row < 3; row++ {
		for _, face := range []Face{Left, Front, Right, Back} {
			writeRow(face, row)
		}
		b.WriteByte('\n')
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(Bottom, row)
		b.WriteByte('\n')
	}

	return b.String()
}
