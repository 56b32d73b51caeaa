package cubesync

// History is the log of moves applied since the last known baseline: the
// solved cube at startup, the last complete scan, or the last accepted
// solution. Replaying the log from the baseline gives the same state as
// applying the moves one by one.
type History struct {
	baseline *Cube
	moves    []Move
}

// NewHistory creates an empty log with the solved cube as baseline.
func NewHistory() *History {
	return &History{baseline: NewCube()}
}

// Record appends a move to the log.
func (h *History) Record(m Move) {
	h.moves = append(h.moves, m)
}

// Clear empties the log and makes a copy of baseline the new baseline.
func (h *History) Clear(baseline *Cube) {
	h.moves = nil
	h.baseline = baseline.Clone()
}

// Reconstruct replays the logged moves starting from baseline. The log and
// baseline are left unchanged.
func (h *History) Reconstruct(baseline *Cube) *Cube {
	return ApplyAll(baseline, h.moves)
}

// Current replays the log against the stored baseline.
func (h *History) Current() *Cube {
	return h.Reconstruct(h.baseline)
}

// Baseline returns a copy of the stored baseline.
func (h *History) Baseline() *Cube {
	return h.baseline.Clone()
}

// Moves returns a copy of the logged moves.
func (h *History) Moves() []Move {
	out := make([]Move, len(h.moves))
	copy(out, h.moves)
	return out
}

// Len returns the number of logged moves.
func (h *History) Len() int {
	return len(h.moves)
}
