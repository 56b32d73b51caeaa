package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SolveRecord represents one solver call in the database.
type SolveRecord struct {
	SolveID    string
	SessionID  string
	SolvedAt   time.Time
	Facelets   string
	Solution   *string
	Error      *string
	DurationMs int64
	Applied    bool
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create records a solver call and returns its ID. Pass either a solution
// or a solver error.
func (r *SolveRepository) Create(sessionID, facelets, solution string, solveErr error, duration time.Duration) (string, error) {
	id := uuid.New().String()

	var solutionPtr, errPtr *string
	if solveErr != nil {
		msg := solveErr.Error()
		errPtr = &msg
	} else {
		solutionPtr = &solution
	}

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, session_id, solved_at, facelets, solution, error, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, sessionID, time.Now().UTC().Format(timeLayout), facelets, solutionPtr, errPtr, duration.Milliseconds())
	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	return id, nil
}

// MarkApplied records that the solution was played on the session.
func (r *SolveRepository) MarkApplied(solveID string) error {
	_, err := r.db.Exec("UPDATE solves SET applied = 1 WHERE solve_id = ?", solveID)
	if err != nil {
		return fmt.Errorf("failed to mark solve applied: %w", err)
	}
	return nil
}

// GetBySession retrieves the solver calls of a session, newest first.
func (r *SolveRepository) GetBySession(sessionID string, limit int) ([]SolveRecord, error) {
	rows, err := r.db.Query(`
		SELECT solve_id, session_id, solved_at, facelets, solution, error, duration_ms, applied
		FROM solves
		WHERE session_id = ?
		ORDER BY solved_at DESC
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get solves: %w", err)
	}
	defer rows.Close()

	var solves []SolveRecord
	for rows.Next() {
		var s SolveRecord
		var solvedAt string
		var applied int
		err := rows.Scan(&s.SolveID, &s.SessionID, &solvedAt, &s.Facelets,
			&s.Solution, &s.Error, &s.DurationMs, &applied)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		s.SolvedAt, _ = time.Parse(timeLayout, solvedAt)
		s.Applied = applied != 0
		solves = append(solves, s)
	}

	return solves, rows.Err()
}
