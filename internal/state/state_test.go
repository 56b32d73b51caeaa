package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	sf, err := NewStateFile(path)
	if err != nil {
		t.Fatalf("NewStateFile: %v", err)
	}
	if sf.HasActiveSession() {
		t.Error("fresh state should have no active session")
	}

	if err := sf.SetActiveSession("abc"); err != nil {
		t.Fatalf("SetActiveSession: %v", err)
	}
	if err := sf.SetDBPath("/tmp/x.db"); err != nil {
		t.Fatalf("SetDBPath: %v", err)
	}

	reloaded, err := NewStateFile(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ActiveSessionID() != "abc" || reloaded.DBPath() != "/tmp/x.db" {
		t.Errorf("reloaded state = %+v", reloaded.State())
	}

	if err := reloaded.ClearActiveSession(); err != nil {
		t.Fatalf("ClearActiveSession: %v", err)
	}
	again, _ := NewStateFile(path)
	if again.HasActiveSession() {
		t.Error("active session survived Clear")
	}
}

func TestStateFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	os.WriteFile(path, []byte("{not json"), 0644)
	if _, err := NewStateFile(path); err == nil {
		t.Error("expected error for corrupt state file")
	}
}
