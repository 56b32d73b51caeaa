package oracle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubesync"
)

// Phase limits. Every legal cube has a first phase of at most 12 moves and
// a second phase of at most 18.
const (
	maxPhase1 = 12
	maxPhase2 = 18

	moveCount = 18

	twistCount      = 2187
	flipCount       = 2048
	sliceCount      = 495
	cornerPermCount = 40320
	udEdgeCount     = 40320
	slicePermCount  = 24
)

// TwoPhase solves any legal state. The first phase brings the cube into
// the subgroup reachable with U, D and half turns of the side faces; the
// second phase solves it within that subgroup. Solutions are short but not
// optimal. Lookup tables are built once per process on first use.
type TwoPhase struct{}

// NewTwoPhase returns the two-phase solver.
func NewTwoPhase() *TwoPhase {
	return &TwoPhase{}
}

// Solve implements cubesync.Oracle.
func (t *TwoPhase) Solve(ctx context.Context, facelets string) (string, error) {
	if err := cubesync.Validate(facelets); err != nil {
		return "", err
	}
	moves, _, err := t.Find(ctx, facelets)
	if err != nil {
		return "", err
	}
	return cubesync.FormatMoves(moves), nil
}

// Find returns a move sequence that solves the given facelet string.
func (t *TwoPhase) Find(ctx context.Context, facelets string) ([]cubesync.Move, Stats, error) {
	start := time.Now()

	c, err := fromFacelets(facelets)
	if err != nil {
		return nil, Stats{}, err
	}

	s := &twoPhaseSearch{
		ctx:   ctx,
		tab:   loadTables(),
		start: c,
		path:  make([]int, 0, maxPhase1+maxPhase2),
	}
	found := s.run()

	stats := Stats{Nodes: s.nodes, Depth: len(s.path), Duration: time.Since(start)}
	if !found {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		return nil, stats, fmt.Errorf("%w (%d+%d): %w", ErrNotFound, maxPhase1, maxPhase2, cubesync.ErrSolverLimit)
	}

	moves := make([]cubesync.Move, len(s.path))
	for i, idx := range s.path {
		moves[i] = allMoves[idx]
	}
	return moves, stats, nil
}

var _ cubesync.Oracle = (*TwoPhase)(nil)

// twoPhaseSearch holds the state of one Find call.
type twoPhaseSearch struct {
	ctx    context.Context
	tab    *tables
	start  cubie
	path   []int
	split  int // length of the first phase within path
	nodes  int
	checks int
	err    error
}

func (s *twoPhaseSearch) run() bool {
	twist, flip, slice := s.start.twist(), s.start.flip(), s.start.slice()
	for depth := 0; depth <= maxPhase1; depth++ {
		if s.phase1(twist, flip, slice, depth) {
			return true
		}
		if s.err != nil {
			return false
		}
	}
	return false
}

func (s *twoPhaseSearch) canceled() bool {
	if s.err != nil {
		return true
	}
	s.checks++
	if s.checks&0x3ff == 1 {
		s.err = s.ctx.Err()
	}
	return s.err != nil
}

func (s *twoPhaseSearch) phase1(twist, flip, slice, togo int) bool {
	t := s.tab
	h := max(t.twistSlicePrune[twist*sliceCount+slice], t.flipSlicePrune[flip*sliceCount+slice])
	if int(h) > togo || h < 0 {
		return false
	}
	if togo == 0 {
		return s.enterPhase2()
	}
	if s.canceled() {
		return false
	}

	for m := 0; m < moveCount; m++ {
		if len(s.path) > 0 && redundant(allMoves[s.path[len(s.path)-1]], allMoves[m]) {
			continue
		}
		s.nodes++
		s.path = append(s.path, m)
		if s.phase1(int(t.twistMove[twist*moveCount+m]), int(t.flipMove[flip*moveCount+m]), int(t.sliceMove[slice*moveCount+m]), togo-1) {
			return true
		}
		s.path = s.path[:len(s.path)-1]
	}
	return false
}

// enterPhase2 replays the first phase on the cubie cube and searches the
// second phase from there.
func (s *twoPhaseSearch) enterPhase2() bool {
	c := s.start
	for _, m := range s.path {
		c = c.mul(&s.tab.moves[m])
	}
	s.split = len(s.path)

	cp, ud, sp := c.cornerPerm(), c.udEdgePerm(), c.slicePerm()
	for depth := 0; depth <= maxPhase2; depth++ {
		if s.phase2(cp, ud, sp, depth) {
			return true
		}
		if s.err != nil {
			return false
		}
	}
	return false
}

func (s *twoPhaseSearch) phase2(cp, ud, sp, togo int) bool {
	t := s.tab
	h := max(t.cornerSlicePrune[cp*slicePermCount+sp], t.edgeSlicePrune[ud*slicePermCount+sp])
	if int(h) > togo || h < 0 {
		return false
	}
	if togo == 0 {
		return true
	}
	if s.canceled() {
		return false
	}

	n := len(phase2Moves)
	for k, m := range phase2Moves {
		if len(s.path) > s.split && redundant(allMoves[s.path[len(s.path)-1]], allMoves[m]) {
			continue
		}
		s.nodes++
		s.path = append(s.path, m)
		if s.phase2(int(t.cornerPermMove[cp*n+k]), int(t.udEdgeMove[ud*n+k]), int(t.slicePermMove[sp*n+k]), togo-1) {
			return true
		}
		s.path = s.path[:len(s.path)-1]
	}
	return false
}

// Tables

var allMoves, phase2Moves = func() ([moveCount]cubesync.Move, []int) {
	var all [moveCount]cubesync.Move
	var p2 []int
	for i := range all {
		m, _ := cubesync.MoveFromIndex(i)
		all[i] = m
		if m.Face == cubesync.Top || m.Face == cubesync.Bottom || m.Turn == cubesync.Double {
			p2 = append(p2, i)
		}
	}
	return all, p2
}()

type tables struct {
	// cubie cube of each face turn, indexed like allMoves
	moves [moveCount]cubie

	twistMove []uint16
	flipMove  []uint16
	sliceMove []uint16

	cornerPermMove []uint16
	udEdgeMove     []uint16
	slicePermMove  []uint16

	twistSlicePrune  []int8
	flipSlicePrune   []int8
	cornerSlicePrune []int8
	edgeSlicePrune   []int8
}

var (
	tablesOnce sync.Once
	sharedTabs *tables
)

func loadTables() *tables {
	tablesOnce.Do(func() {
		sharedTabs = buildTables()
	})
	return sharedTabs
}

func buildTables() *tables {
	t := &tables{}
	solved := cubesync.NewCube()
	for i, m := range allMoves {
		c, err := fromFacelets(cubesync.EncodeUnchecked(cubesync.Apply(solved, m)))
		if err != nil {
			panic(fmt.Sprintf("oracle: move %s has no cubie form: %v", m, err))
		}
		t.moves[i] = c
	}

	p1 := t.moves[:]
	p2 := make([]cubie, len(phase2Moves))
	for k, m := range phase2Moves {
		p2[k] = t.moves[m]
	}

	t.twistMove = moveTable(twistCount, p1, (*cubie).twist)
	t.flipMove = moveTable(flipCount, p1, (*cubie).flip)
	t.sliceMove = moveTable(sliceCount, p1, (*cubie).slice)
	t.cornerPermMove = moveTable(cornerPermCount, p2, (*cubie).cornerPerm)
	t.udEdgeMove = moveTable(udEdgeCount, p2, (*cubie).udEdgePerm)
	t.slicePermMove = moveTable(slicePermCount, p2, (*cubie).slicePerm)

	t.twistSlicePrune = pruneTable(twistCount, sliceCount, t.twistMove, t.sliceMove, len(p1))
	t.flipSlicePrune = pruneTable(flipCount, sliceCount, t.flipMove, t.sliceMove, len(p1))
	t.cornerSlicePrune = pruneTable(cornerPermCount, slicePermCount, t.cornerPermMove, t.slicePermMove, len(p2))
	t.edgeSlicePrune = pruneTable(udEdgeCount, slicePermCount, t.udEdgeMove, t.slicePermMove, len(p2))
	return t
}

// moveTable maps every value of a coordinate through every move. It walks
// the states reachable from solved, keeping one cubie cube per coordinate
// value as its representative.
func moveTable(size int, moves []cubie, coord func(*cubie) int) []uint16 {
	table := make([]uint16, size*len(moves))
	seen := make([]bool, size)

	first := solvedCubie()
	seen[coord(&first)] = true
	queue := []cubie{first}
	for head := 0; head < len(queue); head++ {
		c := queue[head]
		from := coord(&c)
		for m := range moves {
			next := c.mul(&moves[m])
			to := coord(&next)
			table[from*len(moves)+m] = uint16(to)
			if !seen[to] {
				seen[to] = true
				queue = append(queue, next)
			}
		}
	}
	return table
}

// pruneTable holds the distance to solved for each pair of coordinates,
// or -1 for pairs never reached.
func pruneTable(n1, n2 int, move1, move2 []uint16, moves int) []int8 {
	dist := make([]int8, n1*n2)
	for i := range dist {
		dist[i] = -1
	}

	dist[0] = 0
	queue := make([]int32, 1, n1*n2)
	for head := 0; head < len(queue); head++ {
		idx := int(queue[head])
		a, b := idx/n2, idx%n2
		for m := 0; m < moves; m++ {
			next := int(move1[a*moves+m])*n2 + int(move2[b*moves+m])
			if dist[next] < 0 {
				dist[next] = dist[idx] + 1
				queue = append(queue, int32(next))
			}
		}
	}
	return dist
}
