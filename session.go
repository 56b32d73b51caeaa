package cubesync

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrStaleSolution is returned by PlaySolution when the cube changed after
// the solution was computed.
var ErrStaleSolution = errors.New("cubesync: cube changed since the solution was computed")

// Solution is the oracle's answer for one cube state.
type Solution struct {
	Facelets string // state that was solved
	Moves    []Move
}

// Snapshot is the full state of a Session, used to persist and restore it.
type Snapshot struct {
	Current  *Cube  // directly held state, including partial scans
	Baseline *Cube  // history baseline
	Moves    []Move // history since baseline
	Scanned  []Face // faces scanned since the last completed scan
}

// Session owns one cube and its move history and is the single writer for
// both. Every host surface (CLI, TUI, websocket server, scanner loop) goes
// through a Session so that turns, scans and solves are applied one at a
// time in a strict order.
//
//	s := cubesync.NewSession(cubesync.WithOracle(oracle))
//	s.Scramble(cubesync.NewScrambler(1).Generate(20))
//	sol, err := s.Solve(ctx)
//	if err == nil {
//	    s.PlaySolution(sol)
//	}
type Session struct {
	mu       sync.Mutex
	cube     *Cube
	history  *History
	scanned  [6]bool
	inFlight bool
	config   *config

	// Callbacks
	onMove   func(Move)
	onScan   func(Face, [9]Color)
	onSolved func()
}

// NewSession creates a session holding a solved cube.
func NewSession(opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Session{
		cube:    NewCube(),
		history: NewHistory(),
		config:  cfg,
	}
}

// Callbacks run after the session lock is released.

// OnMove sets a callback for every applied move, including solution playback.
func (s *Session) OnMove(cb func(Move)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = cb
}

// OnScan sets a callback for every accepted face scan.
func (s *Session) OnScan(cb func(Face, [9]Color)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onScan = cb
}

// OnSolved sets a callback fired when a move leaves the cube solved.
func (s *Session) OnSolved(cb func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSolved = cb
}

// State access

// Cube returns a copy of the held cube.
func (s *Session) Cube() *Cube {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cube.Clone()
}

// IsSolved reports whether the held cube is solved.
func (s *Session) IsSolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cube.IsSolved()
}

// Facelets returns the held cube as an unchecked facelet string.
func (s *Session) Facelets() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return EncodeUnchecked(s.cube)
}

// History returns the moves logged since the last baseline.
func (s *Session) History() []Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Moves()
}

// Scanned returns the faces scanned since the last completed scan.
func (s *Session) Scanned() []Face {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scannedFaces()
}

func (s *Session) scannedFaces() []Face {
	var faces []Face
	for _, f := range AllFaces() {
		if s.scanned[f] {
			faces = append(faces, f)
		}
	}
	return faces
}

// Export captures the whole session state.
func (s *Session) Export() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Current:  s.cube.Clone(),
		Baseline: s.history.Baseline(),
		Moves:    s.history.Moves(),
		Scanned:  s.scannedFaces(),
	}
}

// Restore replaces the session state with a snapshot taken by Export.
func (s *Session) Restore(snap Snapshot) error {
	if snap.Current == nil || snap.Baseline == nil {
		return errors.New("cubesync: restore needs both current and baseline state")
	}
	for _, m := range snap.Moves {
		if !m.Valid() {
			return &ParseError{Token: m.Notation()}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cube = snap.Current.Clone()
	s.history.Clear(snap.Baseline)
	for _, m := range snap.Moves {
		s.history.Record(m)
	}
	s.scanned = [6]bool{}
	for _, f := range snap.Scanned {
		if f.Valid() {
			s.scanned[f] = true
		}
	}
	s.inFlight = false
	return nil
}

// Turns

// Turn applies one move and records it in the history.
func (s *Session) Turn(m Move) error {
	return s.Turns(m)
}

// Turns applies moves in order as one step: either all of them are applied
// or, if a turn is in flight, none.
func (s *Session) Turns(moves ...Move) error {
	for _, m := range moves {
		if !m.Valid() {
			return &ParseError{Token: m.Notation()}
		}
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrTurnInFlight
	}
	s.applyLocked(moves, true)
	s.mu.Unlock()

	s.notifyMoves(moves)
	return nil
}

// TurnNotation parses a sequence such as "R U R' U'" and applies it.
// Nothing is applied if any token is malformed.
func (s *Session) TurnNotation(notation string) ([]Move, error) {
	moves, err := ParseMoves(notation)
	if err != nil {
		return nil, err
	}
	if err := s.Turns(moves...); err != nil {
		return nil, err
	}
	return moves, nil
}

// BeginTurn applies m and marks it as in flight while the presentation
// animates it. Further turns fail with ErrTurnInFlight until EndTurn.
func (s *Session) BeginTurn(m Move) error {
	if !m.Valid() {
		return &ParseError{Token: m.Notation()}
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrTurnInFlight
	}
	s.applyLocked([]Move{m}, true)
	s.inFlight = true
	s.mu.Unlock()

	s.notifyMoves([]Move{m})
	return nil
}

// EndTurn clears the in-flight flag set by BeginTurn.
func (s *Session) EndTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// InFlight reports whether a turn is being animated.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Scramble resets the cube to solved, makes the solved cube the history
// baseline, then applies and records moves.
func (s *Session) Scramble(moves []Move) error {
	for _, m := range moves {
		if !m.Valid() {
			return &ParseError{Token: m.Notation()}
		}
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrTurnInFlight
	}
	s.cube.Reset()
	s.history.Clear(s.cube)
	s.scanned = [6]bool{}
	s.applyLocked(moves, true)
	s.config.log.Debugw("scrambled", "moves", FormatMoves(moves))
	s.mu.Unlock()

	s.notifyMoves(moves)
	return nil
}

// Reset returns the cube to solved and clears the history.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cube.Reset()
	s.history.Clear(s.cube)
	s.scanned = [6]bool{}
	s.inFlight = false
}

// applyLocked must be called with s.mu held.
func (s *Session) applyLocked(moves []Move, record bool) {
	for _, m := range moves {
		s.cube = Apply(s.cube, m)
		if record && s.config.moveHistory {
			s.history.Record(m)
		}
		s.config.log.Debugw("move applied", "move", m.Notation(), "recorded", record && s.config.moveHistory)
	}
}

func (s *Session) notifyMoves(moves []Move) {
	if len(moves) == 0 {
		return
	}
	s.mu.Lock()
	moveCallback := s.onMove
	solvedCallback := s.onSolved
	solved := s.cube.IsSolved()
	s.mu.Unlock()

	if moveCallback != nil {
		for _, m := range moves {
			moveCallback(m)
		}
	}
	if solved && solvedCallback != nil {
		solvedCallback()
	}
}

// Scanning

// ScanFace overwrites one face with scanned colors. Only the length is
// checked here; color legality is the scanner's job. The cube is untouched
// on error.
func (s *Session) ScanFace(face Face, colors []Color) error {
	s.mu.Lock()
	if err := s.cube.SetFace(face, colors); err != nil {
		s.mu.Unlock()
		return err
	}
	s.scanned[face] = true
	stickers := s.cube.Get(face)
	scanCallback := s.onScan
	s.config.log.Debugw("face scanned", "face", face.String())
	s.mu.Unlock()

	if scanCallback != nil {
		scanCallback(face, stickers)
	}
	return nil
}

// ResetScan forgets which faces were scanned.
func (s *Session) ResetScan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scanned = [6]bool{}
}

// CompleteScan accepts the scanned cube as the new history baseline. It
// needs all six faces scanned since the last completed scan and a valid
// color composition; otherwise nothing changes.
func (s *Session) CompleteScan() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range AllFaces() {
		if !s.scanned[f] {
			return "", fmt.Errorf("%w: %s face missing", ErrScanIncomplete, f)
		}
	}
	facelets, err := Encode(s.cube)
	if err != nil {
		return "", err
	}
	s.history.Clear(s.cube)
	s.scanned = [6]bool{}
	s.config.log.Debugw("scan complete", "facelets", facelets)
	return facelets, nil
}

// Solving

// solveSourceLocked returns the state a solve should start from: the
// replayed history when moves were logged since the baseline, otherwise the
// held cube. Must be called with s.mu held.
func (s *Session) solveSourceLocked() *Cube {
	if s.history.Len() > 0 {
		return s.history.Current()
	}
	return s.cube.Clone()
}

// Solve asks the oracle for a solution to the current state. It never
// modifies the session. A CompositionError means the scan is bad; an
// OracleFailure means the solver rejected the state or replied with tokens
// that are not moves. Errors matching ErrSolverLimit or a context error are
// returned as they are, since they say nothing about the scan.
func (s *Session) Solve(ctx context.Context) (Solution, error) {
	s.mu.Lock()
	source := s.solveSourceLocked()
	oracle := s.config.oracle
	log := s.config.log
	s.mu.Unlock()

	if oracle == nil {
		return Solution{}, ErrNoOracle
	}

	facelets, err := Encode(source)
	if err != nil {
		return Solution{}, err
	}

	reply, err := oracle.Solve(ctx, facelets)
	if err != nil {
		log.Debugw("solver failed", "facelets", facelets, "error", err)
		if solverGaveUp(err) {
			return Solution{}, err
		}
		return Solution{}, &OracleFailure{Facelets: facelets, Err: err}
	}

	moves, err := ParseMoves(reply)
	if err != nil {
		return Solution{}, &OracleFailure{Facelets: facelets, Err: err}
	}

	log.Debugw("solved", "facelets", facelets, "solution", FormatMoves(moves))
	return Solution{Facelets: facelets, Moves: moves}, nil
}

func solverGaveUp(err error) bool {
	return errors.Is(err, ErrSolverLimit) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

// PlaySolution applies an accepted solution without recording it, then
// makes the result the new history baseline. It fails with
// ErrStaleSolution if the cube changed after Solve.
func (s *Session) PlaySolution(sol Solution) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrTurnInFlight
	}
	source := s.solveSourceLocked()
	if EncodeUnchecked(source) != sol.Facelets {
		s.mu.Unlock()
		return ErrStaleSolution
	}
	s.cube = source
	s.applyLocked(sol.Moves, false)
	s.history.Clear(s.cube)
	s.scanned = [6]bool{}
	s.mu.Unlock()

	s.notifyMoves(sol.Moves)
	return nil
}
