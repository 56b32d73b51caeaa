package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubesync"
)

// MoveRecord represents a logged move in the database.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	Face      string
	Turn      int
	Notation  string
}

// Move converts the record back into a move.
func (m MoveRecord) Move() (cubesync.Move, error) {
	return cubesync.ParseMove(m.Notation)
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func insertMoves(tx *sql.Tx, sessionID string, moves []cubesync.Move, startIndex int) error {
	for i, move := range moves {
		_, err := tx.Exec(`
			INSERT INTO moves (session_id, move_index, face, turn, notation)
			VALUES (?, ?, ?, ?, ?)
		`, sessionID, startIndex+i, string(move.Face.Letter()), int(move.Turn), move.Notation())
		if err != nil {
			return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
		}
	}
	return nil
}

// GetBySession retrieves all moves for a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	return loadMoves(r.db, sessionID)
}

func loadMoves(q querier, sessionID string) ([]MoveRecord, error) {
	rows, err := q.Query(`
		SELECT move_id, session_id, move_index, face, turn, notation
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &m.Face, &m.Turn, &m.Notation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Count returns the number of moves for a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// deleteMoves clears a session's log inside tx.
func deleteMoves(tx *sql.Tx, sessionID string) error {
	if _, err := tx.Exec("DELETE FROM moves WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to clear moves: %w", err)
	}
	return nil
}
