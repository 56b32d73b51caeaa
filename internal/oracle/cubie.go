package oracle

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubesync"
)

// ErrUnsolvable is returned for a facelet string whose pieces cannot come
// from a legal cube: a missing or duplicated piece, a twisted corner, a
// flipped edge or a parity mismatch.
var ErrUnsolvable = errors.New("oracle: cube state is not solvable")

// Corner and edge slots.
const (
	cornerCount = 8
	edgeCount   = 12

	// first of the four middle-layer edges FR FL BL BR
	sliceEdge = 8
)

// cornerFacelets lists the facelet string positions of each corner slot
// (URF UFL ULB UBR DFR DLF DBL DRB), the U or D sticker first, then
// clockwise.
var cornerFacelets = [cornerCount][3]int{
	{8, 9, 20}, {6, 18, 38}, {0, 36, 47}, {2, 45, 11},
	{29, 26, 15}, {27, 44, 24}, {33, 53, 42}, {35, 17, 51},
}

// edgeFacelets lists the facelet string positions of each edge slot
// (UR UF UL UB DR DF DL DB FR FL BL BR).
var edgeFacelets = [edgeCount][2]int{
	{5, 10}, {7, 19}, {3, 37}, {1, 46},
	{32, 16}, {28, 25}, {30, 43}, {34, 52},
	{23, 12}, {21, 41}, {50, 39}, {48, 14},
}

const faceLetters = "URFDLB"

func homeLetter(pos int) byte {
	return faceLetters[pos/cubesync.FaceSize]
}

// cubie is the cube as piece permutation and orientation: cp[i] is the
// corner sitting in slot i and co[i] its twist, likewise for edges.
type cubie struct {
	cp [cornerCount]int8
	co [cornerCount]int8
	ep [edgeCount]int8
	eo [edgeCount]int8
}

func solvedCubie() cubie {
	var c cubie
	for i := range c.cp {
		c.cp[i] = int8(i)
	}
	for i := range c.ep {
		c.ep[i] = int8(i)
	}
	return c
}

// mul returns a followed by b.
func (a *cubie) mul(b *cubie) cubie {
	var c cubie
	for i := 0; i < cornerCount; i++ {
		c.cp[i] = a.cp[b.cp[i]]
		c.co[i] = (a.co[b.cp[i]] + b.co[i]) % 3
	}
	for i := 0; i < edgeCount; i++ {
		c.ep[i] = a.ep[b.ep[i]]
		c.eo[i] = (a.eo[b.ep[i]] + b.eo[i]) % 2
	}
	return c
}

// normalizeCenters relabels a facelet string so that each letter names the
// face whose center carries it. Centers never move, so a cube scanned in
// any orientation is solved by the same face turns either way.
func normalizeCenters(f string) (string, error) {
	var relabel [256]byte
	for face := 0; face < 6; face++ {
		center := f[face*cubesync.FaceSize+4]
		if relabel[center] != 0 {
			return "", fmt.Errorf("%w: two centers show %c", ErrUnsolvable, center)
		}
		relabel[center] = faceLetters[face]
	}

	out := []byte(f)
	for i := range out {
		out[i] = relabel[out[i]]
	}
	return string(out), nil
}

// fromFacelets reads the pieces off a validated facelet string.
func fromFacelets(facelets string) (cubie, error) {
	f, err := normalizeCenters(facelets)
	if err != nil {
		return cubie{}, err
	}

	var c cubie
	for i, slot := range cornerFacelets {
		ori := 0
		for ori < 3 && f[slot[ori]] != 'U' && f[slot[ori]] != 'D' {
			ori++
		}
		if ori == 3 {
			return cubie{}, fmt.Errorf("%w: corner %d has no U or D sticker", ErrUnsolvable, i)
		}
		col1, col2 := f[slot[(ori+1)%3]], f[slot[(ori+2)%3]]

		found := false
		for j, home := range cornerFacelets {
			if col1 == homeLetter(home[1]) && col2 == homeLetter(home[2]) {
				c.cp[i], c.co[i] = int8(j), int8(ori)
				found = true
				break
			}
		}
		if !found {
			return cubie{}, fmt.Errorf("%w: corner %d matches no piece", ErrUnsolvable, i)
		}
	}

	for i, slot := range edgeFacelets {
		a, b := f[slot[0]], f[slot[1]]

		found := false
		for j, home := range edgeFacelets {
			h0, h1 := homeLetter(home[0]), homeLetter(home[1])
			if a == h0 && b == h1 {
				c.ep[i], c.eo[i] = int8(j), 0
				found = true
				break
			}
			if a == h1 && b == h0 {
				c.ep[i], c.eo[i] = int8(j), 1
				found = true
				break
			}
		}
		if !found {
			return cubie{}, fmt.Errorf("%w: edge %d matches no piece", ErrUnsolvable, i)
		}
	}

	if err := c.verify(); err != nil {
		return cubie{}, err
	}
	return c, nil
}

// verify checks the invariants every legal cube satisfies.
func (c *cubie) verify() error {
	var seenCorners [cornerCount]bool
	twist := 0
	for i := range c.cp {
		if seenCorners[c.cp[i]] {
			return fmt.Errorf("%w: corner piece %d appears twice", ErrUnsolvable, c.cp[i])
		}
		seenCorners[c.cp[i]] = true
		twist += int(c.co[i])
	}
	if twist%3 != 0 {
		return fmt.Errorf("%w: a corner is twisted", ErrUnsolvable)
	}

	var seenEdges [edgeCount]bool
	flip := 0
	for i := range c.ep {
		if seenEdges[c.ep[i]] {
			return fmt.Errorf("%w: edge piece %d appears twice", ErrUnsolvable, c.ep[i])
		}
		seenEdges[c.ep[i]] = true
		flip += int(c.eo[i])
	}
	if flip%2 != 0 {
		return fmt.Errorf("%w: an edge is flipped", ErrUnsolvable)
	}

	if parity(c.cp[:]) != parity(c.ep[:]) {
		return fmt.Errorf("%w: two pieces are swapped", ErrUnsolvable)
	}
	return nil
}

func parity(p []int8) int {
	inversions := 0
	for i := range p {
		for j := i + 1; j < len(p); j++ {
			if p[j] < p[i] {
				inversions++
			}
		}
	}
	return inversions % 2
}

// Coordinates

// twist encodes the orientation of the first seven corners; the last one
// follows from them.
func (c *cubie) twist() int {
	t := 0
	for i := 0; i < cornerCount-1; i++ {
		t = 3*t + int(c.co[i])
	}
	return t
}

func (c *cubie) flip() int {
	f := 0
	for i := 0; i < edgeCount-1; i++ {
		f = 2*f + int(c.eo[i])
	}
	return f
}

// slice encodes which four slots hold the middle-layer edges, ignoring
// their order. It is 0 when they are home.
func (c *cubie) slice() int {
	a, x := 0, 0
	for j := edgeCount - 1; j >= 0; j-- {
		if c.ep[j] >= sliceEdge {
			a += binomial(edgeCount-1-j, x+1)
			x++
		}
	}
	return a
}

func (c *cubie) cornerPerm() int { return permIndex(c.cp[:]) }
func (c *cubie) udEdgePerm() int { return permIndex(c.ep[:sliceEdge]) }
func (c *cubie) slicePerm() int  { return permIndex(c.ep[sliceEdge:]) }

// permIndex ranks a permutation by its Lehmer code; the identity is 0.
func permIndex(p []int8) int {
	idx := 0
	for i := range p {
		smaller := 0
		for j := i + 1; j < len(p); j++ {
			if p[j] < p[i] {
				smaller++
			}
		}
		idx = idx*(len(p)-i) + smaller
	}
	return idx
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	r := 1
	for i := 0; i < k; i++ {
		r = r * (n - i) / (i + 1)
	}
	return r
}
