package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubesync"
)

// LoadSnapshot rebuilds the stored state of a session so a fresh
// cubesync.Session can pick up where the last process left off.
func LoadSnapshot(db *DB, sessionID string) (cubesync.Snapshot, error) {
	rec, err := NewSessionRepository(db).Get(sessionID)
	if err != nil {
		return cubesync.Snapshot{}, err
	}
	if rec == nil {
		return cubesync.Snapshot{}, fmt.Errorf("session %s not found", sessionID)
	}

	baseline, err := cubesync.Decode(rec.BaselineFacelets)
	if err != nil {
		return cubesync.Snapshot{}, fmt.Errorf("stored baseline: %w", err)
	}
	current, err := cubesync.Decode(rec.CurrentFacelets)
	if err != nil {
		return cubesync.Snapshot{}, fmt.Errorf("stored state: %w", err)
	}

	records, err := NewMoveRepository(db).GetBySession(sessionID)
	if err != nil {
		return cubesync.Snapshot{}, err
	}
	moves := make([]cubesync.Move, 0, len(records))
	for _, r := range records {
		m, err := r.Move()
		if err != nil {
			return cubesync.Snapshot{}, fmt.Errorf("stored move %d: %w", r.MoveIndex, err)
		}
		moves = append(moves, m)
	}

	return cubesync.Snapshot{
		Current:  current,
		Baseline: baseline,
		Moves:    moves,
		Scanned:  decodeFaces(rec.ScannedFaces),
	}, nil
}

// SaveSnapshot stores the state and move log of a session in one
// transaction. When the stored log is a prefix of the snapshot's history
// only the new moves are appended; otherwise the log is rewritten.
func SaveSnapshot(db *DB, sessionID string, snap cubesync.Snapshot) error {
	return db.Transaction(func(tx *sql.Tx) error {
		err := updateState(tx, sessionID,
			cubesync.EncodeUnchecked(snap.Baseline),
			cubesync.EncodeUnchecked(snap.Current),
			encodeFaces(snap.Scanned))
		if err != nil {
			return err
		}

		stored, err := loadMoves(tx, sessionID)
		if err != nil {
			return err
		}
		if isPrefix(stored, snap.Moves) {
			return insertMoves(tx, sessionID, snap.Moves[len(stored):], len(stored))
		}

		if err := deleteMoves(tx, sessionID); err != nil {
			return err
		}
		return insertMoves(tx, sessionID, snap.Moves, 0)
	})
}

// isPrefix reports whether the stored records match the first moves of
// history, index for index.
func isPrefix(stored []MoveRecord, history []cubesync.Move) bool {
	if len(stored) > len(history) {
		return false
	}
	for i, r := range stored {
		if r.MoveIndex != i || r.Notation != history[i].Notation() {
			return false
		}
	}
	return true
}
