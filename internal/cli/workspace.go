package cli

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubesync"
	"github.com/SeamusWaldron/cubesync/internal/logger"
	"github.com/SeamusWaldron/cubesync/internal/oracle"
	"github.com/SeamusWaldron/cubesync/internal/state"
	"github.com/SeamusWaldron/cubesync/internal/storage"
)

var errNoActiveSession = errors.New("no active session (run 'cubesync new' first)")

// workspace bundles what a command needs to act on the active session.
type workspace struct {
	db        *storage.DB
	stateFile *state.StateFile
	sessionID string
	session   *cubesync.Session
}

func openDB(stateFile *state.StateFile) (*storage.DB, error) {
	path := getDBPath(stateFile.DBPath())
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// openWorkspace opens the database and state file and, when the state file
// names an active session, restores it.
func openWorkspace(requireSession bool) (*workspace, error) {
	stateFile, err := state.NewDefaultStateFile()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	db, err := openDB(stateFile)
	if err != nil {
		return nil, err
	}

	w := &workspace{db: db, stateFile: stateFile}
	if !stateFile.HasActiveSession() {
		if requireSession {
			db.Close()
			return nil, errNoActiveSession
		}
		return w, nil
	}

	if err := w.load(stateFile.ActiveSessionID()); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *workspace) load(sessionID string) error {
	session, err := newSession()
	if err != nil {
		return err
	}

	snap, err := storage.LoadSnapshot(w.db, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := session.Restore(snap); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	w.sessionID = sessionID
	w.session = session
	logger.Log.Debugw("session loaded", "session", sessionID, "moves", len(snap.Moves))
	return nil
}

// create starts a new solved session and makes it active.
func (w *workspace) create(name string) error {
	id, err := storage.NewSessionRepository(w.db).Create(name)
	if err != nil {
		return err
	}
	if err := w.stateFile.SetActiveSession(id); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return w.load(id)
}

func (w *workspace) save() error {
	if w.session == nil {
		return errNoActiveSession
	}
	if err := storage.SaveSnapshot(w.db, w.sessionID, w.session.Export()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (w *workspace) Close() error {
	return w.db.Close()
}

// newSession builds a session with the configured solver.
func newSession() (*cubesync.Session, error) {
	var o cubesync.Oracle
	if cfg != nil {
		var err error
		o, err = oracle.FromConfig(cfg.Oracle)
		if err != nil {
			return nil, err
		}
	} else {
		o = oracle.NewChecked(oracle.NewTwoPhase())
	}

	opts := []cubesync.Option{cubesync.WithLogger(logger.Log)}
	if o != nil {
		opts = append(opts, cubesync.WithOracle(o))
	}
	return cubesync.NewSession(opts...), nil
}
