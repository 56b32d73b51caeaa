package cubesync

// Simplify merges adjacent turns of the same face: R R becomes R2, R R'
// cancels, R2 R becomes R'. Merges cascade, so R U U' R' simplifies to
// nothing. The result reaches the same state as the input.
func Simplify(moves []Move) []Move {
	result := make([]Move, 0, len(moves))

	for _, move := range moves {
		if len(result) == 0 {
			result = append(result, move)
			continue
		}

		last := &result[len(result)-1]
		if last.Face != move.Face {
			result = append(result, move)
			continue
		}

		merged, ok := mergeMoves(*last, move)
		if !ok {
			// Full cancellation
			result = result[:len(result)-1]
		} else {
			*last = merged
		}
	}

	return result
}

// mergeMoves combines two turns of the same face. It returns false when
// they cancel out.
func mergeMoves(a, b Move) (Move, bool) {
	total := (a.quarterTurns() + b.quarterTurns()) % 4
	switch total {
	case 1:
		return Move{Face: a.Face, Turn: CW}, true
	case 2:
		return Move{Face: a.Face, Turn: Double}, true
	case 3:
		return Move{Face: a.Face, Turn: CCW}, true
	default:
		return Move{}, false
	}
}
