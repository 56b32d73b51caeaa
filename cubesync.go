// Package cubesync simulates a 3x3x3 twisty cube and keeps it in sync with
// a physical one: camera samples are classified into sticker colors, face
// turns are applied through fixed permutation tables, and the state is
// exchanged with an external solver as a 54-character facelet string.
//
// # Features
//
//   - Pure state transitions: Apply never mutates its input
//   - Strict move notation parsing (U D L R F B with ', 2 suffixes)
//   - Facelet encoding with composition checks
//   - Move history with replay from the last baseline
//   - HSV color classification of camera samples
//   - Session type that serializes turns, scans and solves
//
// # Standalone Cube Simulation
//
//	cube := cubesync.NewCube()
//
//	// Apply moves using predefined constants
//	cube.Apply(cubesync.R, cubesync.U, cubesync.RPrime, cubesync.UPrime)
//
//	// Or from notation
//	cube.ApplyNotation("F B2 L' D")
//
//	fmt.Println("Solved:", cube.IsSolved())
//	fmt.Println(cubesync.EncodeUnchecked(cube))
//
// # Scanning and Solving
//
// A Session accepts one face scan at a time. Once all six faces are in,
// CompleteScan checks the color composition and makes the scan the new
// history baseline. Solve hands the state to an Oracle:
//
//	s := cubesync.NewSession(cubesync.WithOracle(o))
//	for _, face := range cubesync.AllFaces() {
//	    s.ScanFace(face, colors[face])
//	}
//	if _, err := s.CompleteScan(); cubesync.IsRescanRequired(err) {
//	    // ask the user to scan again
//	}
//	sol, err := s.Solve(ctx)
//
// # Predefined Moves
//
//	cubesync.R      // Right clockwise
//	cubesync.RPrime // Right counter-clockwise
//	cubesync.R2     // Right 180
//	// ... and similarly for L, U, D, F, B
package cubesync
