package logger

import "testing"

func TestDefaultLoggerIsUsable(t *testing.T) {
	Log.Infow("no setup needed", "key", "value")
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	before := Log
	if err := Init("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
	if Log != before {
		t.Error("failed Init replaced the logger")
	}
}

func TestInit(t *testing.T) {
	before := Log
	defer func() { Log = before }()

	if err := Init("debug"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !Log.Desugar().Core().Enabled(-1) {
		t.Error("debug level should be enabled")
	}
}
