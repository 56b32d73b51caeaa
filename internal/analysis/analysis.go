// Package analysis finds wasted motion and repeated sequences in a move
// history.
package analysis

import (
	"github.com/SeamusWaldron/cubesync"
)

// Cancellation is a move immediately undone by the next one (R then R').
type Cancellation struct {
	Index int // index of the first move
	First cubesync.Move
	Next  cubesync.Move
}

// Merge is a pair of adjacent same-face moves that one move could replace
// (R then R becomes R2).
type Merge struct {
	Index  int
	First  cubesync.Move
	Next   cubesync.Move
	Merged cubesync.Move
}

// Report summarizes a move history.
type Report struct {
	Moves         int
	Simplified    int // moves left after Simplify
	Cancellations []Cancellation
	Merges        []Merge
	Repeats       []Repeat
}

// Wasted is the number of moves Simplify removes.
func (r *Report) Wasted() int {
	return r.Moves - r.Simplified
}

// Efficiency is the simplified length over the raw length, 1 for an empty
// history.
func (r *Report) Efficiency() float64 {
	if r.Moves == 0 {
		return 1
	}
	return float64(r.Simplified) / float64(r.Moves)
}

// Repeat search bounds used by Analyze.
const (
	MinRepeatLength = 4
	MaxRepeatLength = 8
	TopRepeats      = 3
)

// Analyze builds a report for moves.
func Analyze(moves []cubesync.Move) *Report {
	report := &Report{
		Moves:      len(moves),
		Simplified: len(cubesync.Simplify(moves)),
	}

	for i := 0; i+1 < len(moves); i++ {
		a, b := moves[i], moves[i+1]
		if a.Face != b.Face {
			continue
		}

		merged := cubesync.Simplify([]cubesync.Move{a, b})
		if len(merged) == 0 {
			report.Cancellations = append(report.Cancellations, Cancellation{Index: i, First: a, Next: b})
		} else {
			report.Merges = append(report.Merges, Merge{Index: i, First: a, Next: b, Merged: merged[0]})
		}
	}

	report.Repeats = MineRepeats(moves, MinRepeatLength, MaxRepeatLength, TopRepeats)
	return report
}
