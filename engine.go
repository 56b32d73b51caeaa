package cubesync

// cycle moves the sticker at position [0] to [1], [1] to [2], [2] to [3]
// and [3] back to [0]. Positions are flat URFDLB indices (face*9 + index).
type cycle [4]int

// Clockwise quarter turns, one table per face. The first two cycles turn
// the face's own corners and edges; the last three carry the adjacent
// row or column of each neighbor to the next neighbor.
//
// Flat index bases: U 0, R 9, F 18, D 27, L 36, B 45.
var clockwiseCycles = [6][5]cycle{
	Top: {
		{0, 2, 8, 6}, {1, 5, 7, 3},
		{9, 18, 36, 45}, {10, 19, 37, 46}, {11, 20, 38, 47}, // R -> F -> L -> B
	},
	Right: {
		{9, 11, 17, 15}, {10, 14, 16, 12},
		{2, 51, 29, 20}, {5, 48, 32, 23}, {8, 45, 35, 26}, // U -> B -> D -> F
	},
	Front: {
		{18, 20, 26, 24}, {19, 23, 25, 21},
		{6, 9, 29, 44}, {7, 12, 28, 41}, {8, 15, 27, 38}, // U -> R -> D -> L
	},
	Bottom: {
		{27, 29, 35, 33}, {28, 32, 34, 30},
		{15, 51, 42, 24}, {16, 52, 43, 25}, {17, 53, 44, 26}, // R -> B -> L -> F
	},
	Left: {
		{36, 38, 44, 42}, {37, 41, 43, 39},
		{0, 18, 27, 53}, {3, 21, 30, 50}, {6, 24, 33, 47}, // U -> F -> D -> B
	},
	Back: {
		{45, 47, 53, 51}, {46, 50, 52, 48},
		{0, 42, 35, 11}, {1, 39, 34, 14}, {2, 36, 33, 17}, // U -> L -> D -> R
	},
}

// permutation maps each destination position to the position its sticker
// comes from: after applying p, out[i] = in[p[i]].
type permutation [FaceletSize]int

func identity() permutation {
	var p permutation
	for i := range p {
		p[i] = i
	}
	return p
}

// then returns the permutation that applies p first and q second.
func (p permutation) then(q permutation) permutation {
	var out permutation
	for i := range out {
		out[i] = p[q[i]]
	}
	return out
}

// moveTables[face][quarterTurns-1] holds the permutation for 1, 2 and 3
// clockwise quarter turns of face.
var moveTables = buildMoveTables()

func buildMoveTables() [6][3]permutation {
	var tables [6][3]permutation
	for face := range clockwiseCycles {
		cw := identity()
		for _, cy := range clockwiseCycles[face] {
			for k := 0; k < 4; k++ {
				cw[cy[(k+1)%4]] = cy[k]
			}
		}
		tables[face][0] = cw
		tables[face][1] = cw.then(cw)
		tables[face][2] = tables[face][1].then(cw)
	}
	return tables
}

// Apply returns the state reached by turning m on state. The input is never
// modified, so the same state can be reused for replay and speculative
// solving. Apply panics if m is not a valid move; use ParseMove to build
// moves from untrusted input.
func Apply(state *Cube, m Move) *Cube {
	if !m.Valid() {
		panic("cubesync: Apply called with invalid move " + m.Notation())
	}
	perm := &moveTables[m.Face][m.quarterTurns()-1]
	in := state.flat()
	var out [FaceletSize]Color
	for i := range out {
		out[i] = in[perm[i]]
	}
	return fromFlat(out)
}

// ApplyAll folds Apply over moves starting from state.
func ApplyAll(state *Cube, moves []Move) *Cube {
	cur := state.Clone()
	for _, m := range moves {
		cur = Apply(cur, m)
	}
	return cur
}

// Apply turns m on the cube in place.
func (c *Cube) Apply(moves ...Move) {
	*c = *ApplyAll(c, moves)
}

// ApplyNotation parses a sequence such as "R U R' U'" and applies it in place.
// Nothing is applied if any token is malformed.
func (c *Cube) ApplyNotation(s string) error {
	moves, err := ParseMoves(s)
	if err != nil {
		return err
	}
	c.Apply(moves...)
	return nil
}
