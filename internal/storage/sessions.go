package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubesync"
	"github.com/google/uuid"
)

// SessionRecord represents a session in the database.
type SessionRecord struct {
	SessionID        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Name             *string
	BaselineFacelets string
	CurrentFacelets  string
	ScannedFaces     string // face letters, e.g. "URF"
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a new solved session and returns its ID.
func (r *SessionRepository) Create(name string) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC().Format(timeLayout)

	var namePtr *string
	if name != "" {
		namePtr = &name
	}

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, created_at, updated_at, name, baseline_facelets, current_facelets)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, now, now, namePtr, cubesync.SolvedFacelets, cubesync.SolvedFacelets)

	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// Get retrieves a session by ID. It returns nil when no such session exists.
func (r *SessionRepository) Get(sessionID string) (*SessionRecord, error) {
	row := r.db.QueryRow(`
		SELECT session_id, created_at, updated_at, name, baseline_facelets, current_facelets, scanned_faces
		FROM sessions
		WHERE session_id = ?
	`, sessionID)

	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// GetLast retrieves the most recently updated session.
func (r *SessionRepository) GetLast() (*SessionRecord, error) {
	row := r.db.QueryRow(`
		SELECT session_id, created_at, updated_at, name, baseline_facelets, current_facelets, scanned_faces
		FROM sessions
		ORDER BY updated_at DESC
		LIMIT 1
	`)

	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last session: %w", err)
	}
	return s, nil
}

// List retrieves recent sessions.
func (r *SessionRepository) List(limit int) ([]SessionRecord, error) {
	rows, err := r.db.Query(`
		SELECT session_id, created_at, updated_at, name, baseline_facelets, current_facelets, scanned_faces
		FROM sessions
		ORDER BY updated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRecord
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}

	return sessions, rows.Err()
}

// Delete deletes a session and all related data (cascading).
func (r *SessionRepository) Delete(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// updateState writes the cube columns of a session inside tx.
func updateState(tx *sql.Tx, sessionID, baseline, current, scanned string) error {
	result, err := tx.Exec(`
		UPDATE sessions
		SET updated_at = ?, baseline_facelets = ?, current_facelets = ?, scanned_faces = ?
		WHERE session_id = ?
	`, time.Now().UTC().Format(timeLayout), baseline, current, scanned, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	var s SessionRecord
	var createdAt, updatedAt string
	err := row.Scan(&s.SessionID, &createdAt, &updatedAt, &s.Name,
		&s.BaselineFacelets, &s.CurrentFacelets, &s.ScannedFaces)
	if err != nil {
		return nil, err
	}
	s.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	s.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &s, nil
}

// encodeFaces writes faces as their notation letters.
func encodeFaces(faces []cubesync.Face) string {
	var b strings.Builder
	for _, f := range faces {
		b.WriteByte(f.Letter())
	}
	return b.String()
}

func decodeFaces(s string) []cubesync.Face {
	var faces []cubesync.Face
	for i := 0; i < len(s); i++ {
		if f, ok := cubesync.ParseFace(s[i : i+1]); ok {
			faces = append(faces, f)
		}
	}
	return faces
}
