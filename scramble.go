package cubesync

import "math/rand"

// DefaultScrambleLength is the scramble length used when none is given.
const DefaultScrambleLength = 20

// Scrambler produces random move sequences. Two consecutive moves never
// turn the same face. A Scrambler is not safe for concurrent use.
type Scrambler struct {
	rng *rand.Rand
}

// NewScrambler creates a scrambler with a fixed seed so sequences can be
// reproduced.
func NewScrambler(seed int64) *Scrambler {
	return &Scrambler{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns n random moves.
func (s *Scrambler) Generate(n int) []Move {
	if n <= 0 {
		return nil
	}
	moves := make([]Move, 0, n)
	prev := Face(-1)
	for len(moves) < n {
		face := Face(s.rng.Intn(6))
		if face == prev {
			continue
		}
		m, _ := MoveFromIndex(int(face)*3 + s.rng.Intn(3))
		moves = append(moves, m)
		prev = face
	}
	return moves
}
