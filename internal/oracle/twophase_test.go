package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubesync"
	"github.com/SeamusWaldron/cubesync/internal/config"
)

func TestCubieMatchesFaceletEngine(t *testing.T) {
	tab := loadTables()
	for seed := int64(1); seed <= 5; seed++ {
		c := cubesync.ApplyAll(cubesync.NewCube(), cubesync.NewScrambler(seed).Generate(25))
		base, err := fromFacelets(cubesync.EncodeUnchecked(c))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for i, m := range allMoves {
			want, err := fromFacelets(cubesync.EncodeUnchecked(cubesync.Apply(c, m)))
			if err != nil {
				t.Fatalf("seed %d %s: %v", seed, m, err)
			}
			if got := base.mul(&tab.moves[i]); got != want {
				t.Errorf("seed %d: cubie %s disagrees with the facelet engine", seed, m)
			}
		}
	}
}

func TestCubieSolvedCoordinates(t *testing.T) {
	c, err := fromFacelets(cubesync.SolvedFacelets)
	if err != nil {
		t.Fatal(err)
	}
	if c != solvedCubie() {
		t.Fatalf("solved facelets read as %+v", c)
	}
	if c.twist() != 0 || c.flip() != 0 || c.slice() != 0 ||
		c.cornerPerm() != 0 || c.udEdgePerm() != 0 || c.slicePerm() != 0 {
		t.Error("solved cube should have all coordinates 0")
	}
}

func swap(f string, pairs ...[2]int) string {
	b := []byte(f)
	for _, p := range pairs {
		b[p[0]], b[p[1]] = b[p[1]], b[p[0]]
	}
	return string(b)
}

func TestTwoPhaseRejectsIllegalStates(t *testing.T) {
	// URF corner is U9 R1 F3, UR edge is U6 R2, UF edge is U8 F2.
	twisted := []byte(cubesync.SolvedFacelets)
	twisted[8], twisted[9], twisted[20] = 'F', 'U', 'R'

	tests := []struct {
		name     string
		facelets string
	}{
		{"twisted corner", string(twisted)},
		{"flipped edge", swap(cubesync.SolvedFacelets, [2]int{5, 10})},
		{"swapped edges", swap(cubesync.SolvedFacelets, [2]int{5, 7}, [2]int{10, 19})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cubesync.Validate(tt.facelets); err != nil {
				t.Fatalf("facelets should pass composition: %v", err)
			}
			_, err := NewTwoPhase().Solve(context.Background(), tt.facelets)
			if !errors.Is(err, ErrUnsolvable) {
				t.Errorf("expected ErrUnsolvable, got %v", err)
			}
		})
	}
}

func TestTwoPhaseSolvesScrambles(t *testing.T) {
	solver := NewTwoPhase()
	for seed := int64(1); seed <= 8; seed++ {
		scramble := cubesync.NewScrambler(seed).Generate(cubesync.DefaultScrambleLength)
		c := cubesync.ApplyAll(cubesync.NewCube(), scramble)

		moves, stats, err := solver.Find(context.Background(), cubesync.EncodeUnchecked(c))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !cubesync.ApplyAll(c, moves).IsSolved() {
			t.Errorf("seed %d: %s does not solve %s", seed, cubesync.FormatMoves(moves), cubesync.FormatMoves(scramble))
		}
		if len(moves) > maxPhase1+maxPhase2 || stats.Depth != len(moves) {
			t.Errorf("seed %d: %d moves, depth %d", seed, len(moves), stats.Depth)
		}
	}
}

func TestTwoPhaseSolvedCube(t *testing.T) {
	reply, err := NewTwoPhase().Solve(context.Background(), cubesync.SolvedFacelets)
	if err != nil || reply != "" {
		t.Errorf("Solve(solved) = %q, %v", reply, err)
	}
}

func TestTwoPhaseRelabeledCenters(t *testing.T) {
	// Same cube with every color renamed, as when it is held another way up.
	c := cubesync.ApplyAll(cubesync.NewCube(), cubesync.NewScrambler(3).Generate(20))
	f := []byte(cubesync.EncodeUnchecked(c))
	rename := map[byte]byte{'U': 'F', 'F': 'D', 'D': 'B', 'B': 'U', 'R': 'R', 'L': 'L'}
	for i := range f {
		f[i] = rename[f[i]]
	}

	moves, _, err := NewTwoPhase().Find(context.Background(), string(f))
	if err != nil {
		t.Fatal(err)
	}
	if !cubesync.ApplyAll(c, moves).IsSolved() {
		t.Errorf("%s does not solve the relabeled cube", cubesync.FormatMoves(moves))
	}
}

func TestTwoPhaseCanceled(t *testing.T) {
	loadTables()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	facelets := scrambled(t, "R U F D L B R2 U' F2 D' L2 B'")
	_, err := NewTwoPhase().Solve(ctx, facelets)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultSessionSolvesFullScramble(t *testing.T) {
	o, err := FromConfig(config.OracleConfig{Kind: "search", MaxDepth: DefaultMaxDepth})
	if err != nil {
		t.Fatal(err)
	}
	s := cubesync.NewSession(cubesync.WithOracle(o))
	if err := s.Scramble(cubesync.NewScrambler(42).Generate(cubesync.DefaultScrambleLength)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sol, err := s.Solve(ctx)
	if err != nil {
		if cubesync.IsRescanRequired(err) {
			t.Fatalf("a scrambled cube must never ask for a rescan: %v", err)
		}
		t.Fatalf("Solve: %v", err)
	}
	if err := s.PlaySolution(sol); err != nil {
		t.Fatal(err)
	}
	if !s.IsSolved() {
		t.Error("cube not solved after playing the solution")
	}
}

func TestSessionSolverLimitIsNotRescan(t *testing.T) {
	s := cubesync.NewSession(cubesync.WithOracle(NewChecked(NewSearch(2))))
	if err := s.Scramble(cubesync.NewScrambler(7).Generate(cubesync.DefaultScrambleLength)); err != nil {
		t.Fatal(err)
	}

	_, err := s.Solve(context.Background())
	if err == nil {
		t.Fatal("depth-2 search should not solve a 20-move scramble")
	}
	if !errors.Is(err, cubesync.ErrSolverLimit) {
		t.Errorf("expected ErrSolverLimit, got %v", err)
	}
	if cubesync.IsRescanRequired(err) {
		t.Errorf("solver limit reported as rescan: %v", err)
	}
	var failure *cubesync.OracleFailure
	if errors.As(err, &failure) {
		t.Error("solver limit should not be an OracleFailure")
	}
}
