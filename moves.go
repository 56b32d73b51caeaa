package cubesync

import "sort"

// Predefined moves for convenience.
//
// Example:
//
//	cube.Apply(cubesync.R, cubesync.U, cubesync.RPrime, cubesync.UPrime)
var (
	// Right face moves
	R      = Move{Face: Right, Turn: CW}     // Right clockwise
	RPrime = Move{Face: Right, Turn: CCW}    // Right counter-clockwise
	R2     = Move{Face: Right, Turn: Double} // Right 180

	// Left face moves
	L      = Move{Face: Left, Turn: CW}
	LPrime = Move{Face: Left, Turn: CCW}
	L2     = Move{Face: Left, Turn: Double}

	// Up face moves
	U      = Move{Face: Top, Turn: CW}
	UPrime = Move{Face: Top, Turn: CCW}
	U2     = Move{Face: Top, Turn: Double}

	// Down face moves
	D      = Move{Face: Bottom, Turn: CW}
	DPrime = Move{Face: Bottom, Turn: CCW}
	D2     = Move{Face: Bottom, Turn: Double}

	// Front face moves
	F      = Move{Face: Front, Turn: CW}
	FPrime = Move{Face: Front, Turn: CCW}
	F2     = Move{Face: Front, Turn: Double}

	// Back face moves
	B      = Move{Face: Back, Turn: CW}
	BPrime = Move{Face: Back, Turn: CCW}
	B2     = Move{Face: Back, Turn: Double}
)

// NamedAlgorithm is a well-known move sequence offered for demonstration.
type NamedAlgorithm struct {
	ID       string
	Category string
	Name     string
	Moves    []Move
}

// algorithms holds the demonstration library. Slice-move algorithms
// (Z-perm, H-perm) are left out since M/E/S are not face turns.
var algorithms = map[string]NamedAlgorithm{
	"sexy_move": {ID: "sexy_move", Category: "basics", Name: "Sexy Move", Moves: mustParseMoves("R U R' U'")},
	"sune":      {ID: "sune", Category: "oll", Name: "Sune", Moves: mustParseMoves("R U R' U R U2 R'")},
	"anti_sune": {ID: "anti_sune", Category: "oll", Name: "Anti-Sune", Moves: mustParseMoves("R U2 R' U' R U' R'")},
	"t_perm":    {ID: "t_perm", Category: "pll", Name: "T-Perm", Moves: mustParseMoves("R U R' U' R' F R2 U' R' U' R U R' F'")},
	"y_perm":    {ID: "y_perm", Category: "pll", Name: "Y-Perm", Moves: mustParseMoves("F R U' R' U' R U R' F' R U R' U' R' F R F'")},
	"u_perm_a":  {ID: "u_perm_a", Category: "pll", Name: "Ub-Perm", Moves: mustParseMoves("R2 U R U R' U' R' U' R' U R'")},
	"u_perm_b":  {ID: "u_perm_b", Category: "pll", Name: "Ua-Perm", Moves: mustParseMoves("R U' R U R U R U' R' U' R2")},
}

// Algorithm looks up a named algorithm.
func Algorithm(id string) (NamedAlgorithm, bool) {
	a, ok := algorithms[id]
	if !ok {
		return NamedAlgorithm{}, false
	}
	a.Moves = append([]Move(nil), a.Moves...)
	return a, true
}

// Algorithms returns the library sorted by category then ID.
func Algorithms() []NamedAlgorithm {
	out := make([]NamedAlgorithm, 0, len(algorithms))
	for id := range algorithms {
		a, _ := Algorithm(id)
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func mustParseMoves(s string) []Move {
	moves, err := ParseMoves(s)
	if err != nil {
		panic(err)
	}
	return moves
}
