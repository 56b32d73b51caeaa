package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubesync"
)

// ScanRecord is one accepted face scan.
type ScanRecord struct {
	ScanID    int64
	SessionID string
	ScannedAt time.Time
	Face      string
	Colors    string // nine color letters, e.g. "WWRGBOYWW"
}

// ScanRepository provides CRUD operations for scans.
type ScanRepository struct {
	db *DB
}

// NewScanRepository creates a new scan repository.
func NewScanRepository(db *DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// Create records a face scan.
func (r *ScanRepository) Create(sessionID string, face cubesync.Face, colors [9]cubesync.Color) (int64, error) {
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(c.Char())
	}

	result, err := r.db.Exec(`
		INSERT INTO scans (session_id, scanned_at, face, colors)
		VALUES (?, ?, ?, ?)
	`, sessionID, time.Now().UTC().Format(timeLayout), face.String(), b.String())
	if err != nil {
		return 0, fmt.Errorf("failed to create scan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get scan ID: %w", err)
	}
	return id, nil
}

// GetBySession retrieves the scans of a session, oldest first.
func (r *ScanRepository) GetBySession(sessionID string) ([]ScanRecord, error) {
	rows, err := r.db.Query(`
		SELECT scan_id, session_id, scanned_at, face, colors
		FROM scans
		WHERE session_id = ?
		ORDER BY scan_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scans: %w", err)
	}
	defer rows.Close()

	var scans []ScanRecord
	for rows.Next() {
		var s ScanRecord
		var scannedAt string
		if err := rows.Scan(&s.ScanID, &s.SessionID, &scannedAt, &s.Face, &s.Colors); err != nil {
			return nil, fmt.Errorf("failed to scan scan record: %w", err)
		}
		s.ScannedAt, _ = time.Parse(timeLayout, scannedAt)
		scans = append(scans, s)
	}

	return scans, rows.Err()
}
