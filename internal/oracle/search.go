package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubesync"
)

// DefaultMaxDepth bounds Search when no depth is configured.
const DefaultMaxDepth = 7

// ErrNotFound is returned when no solution exists within the depth limit.
// Errors carrying it also match cubesync.ErrSolverLimit.
var ErrNotFound = errors.New("oracle: no solution within depth limit")

// Stats captures performance characteristics of a search.
type Stats struct {
	Nodes    int
	Depth    int
	Duration time.Duration
}

// Search is an iterative-deepening search over the 18 face turns. It finds
// a shortest solution, so it is only practical for states a few moves from
// solved.
type Search struct {
	MaxDepth int
}

// NewSearch creates a search bounded at maxDepth moves. Non-positive values
// use DefaultMaxDepth.
func NewSearch(maxDepth int) *Search {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Search{MaxDepth: maxDepth}
}

// Solve implements cubesync.Oracle.
func (s *Search) Solve(ctx context.Context, facelets string) (string, error) {
	if err := cubesync.Validate(facelets); err != nil {
		return "", err
	}
	c, err := cubesync.Decode(facelets)
	if err != nil {
		return "", err
	}
	moves, _, err := s.Find(ctx, c)
	if err != nil {
		return "", err
	}
	return cubesync.FormatMoves(moves), nil
}

// Find searches for a shortest move sequence that solves c.
func (s *Search) Find(ctx context.Context, c *cubesync.Cube) ([]cubesync.Move, Stats, error) {
	start := time.Now()
	stats := Stats{}

	maxDepth := s.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	path := make([]cubesync.Move, 0, maxDepth)
	var dfs func(cur *cubesync.Cube, depth int) bool
	dfs = func(cur *cubesync.Cube, depth int) bool {
		if depth == 0 {
			return cur.IsSolved()
		}
		if ctx.Err() != nil {
			return false
		}
		for i := 0; i < 18; i++ {
			m, _ := cubesync.MoveFromIndex(i)
			if len(path) > 0 && redundant(path[len(path)-1], m) {
				continue
			}
			stats.Nodes++
			path = append(path, m)
			if dfs(cubesync.Apply(cur, m), depth-1) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}

	for depth := 0; depth <= maxDepth; depth++ {
		stats.Depth = depth
		if dfs(c, depth) {
			stats.Duration = time.Since(start)
			return path, stats, nil
		}
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return nil, stats, err
		}
	}

	stats.Duration = time.Since(start)
	return nil, stats, fmt.Errorf("%w (%d): %w", ErrNotFound, maxDepth, cubesync.ErrSolverLimit)
}

// redundant prunes sequences with a shorter or equivalent form: two turns
// of the same face, and turns of opposite faces in the non-canonical order.
func redundant(prev, next cubesync.Move) bool {
	if prev.Face == next.Face {
		return true
	}
	return cubesync.Opposite(prev.Face) == next.Face && next.Face < prev.Face
}

var _ cubesync.Oracle = (*Search)(nil)
