package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubesync"
	"github.com/SeamusWaldron/cubesync/internal/state"
	"github.com/SeamusWaldron/cubesync/internal/storage"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestRenderNetSolved(t *testing.T) {
	out := plain(renderNet(cubesync.NewCube(), -1))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9:\n%s", len(lines), out)
	}
	if got, want := lines[0], "          W  W  W "; got != want {
		t.Errorf("top row = %q, want %q", got, want)
	}
	if got, want := lines[3], " G  G  G  R  R  R  B  B  B  O  O  O "; got != want {
		t.Errorf("middle row = %q, want %q", got, want)
	}
	for _, c := range []string{"W", "Y", "R", "O", "B", "G"} {
		if n := strings.Count(out, c); n != 9 {
			t.Errorf("%s appears %d times, want 9", c, n)
		}
	}
	if strings.Contains(out, "[") {
		t.Error("nothing should be highlighted")
	}
}

func TestRenderNetHighlight(t *testing.T) {
	out := plain(renderNet(cubesync.NewCube(), cubesync.Front))
	if n := strings.Count(out, "[R]"); n != 9 {
		t.Errorf("highlighted front stickers = %d, want 9", n)
	}
	if strings.Contains(out, "[W]") {
		t.Error("top face should not be highlighted")
	}
}

func TestParseOrder(t *testing.T) {
	order, err := parseOrder("U, D,front,back,L,right")
	if err != nil {
		t.Fatalf("parseOrder: %v", err)
	}
	want := []cubesync.Face{cubesync.Top, cubesync.Bottom, cubesync.Front, cubesync.Back, cubesync.Left, cubesync.Right}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("face %d = %s, want %s", i, order[i], want[i])
		}
	}

	for _, bad := range []string{"U,D,F", "U,D,F,B,L,X", ""} {
		if _, err := parseOrder(bad); err == nil {
			t.Errorf("parseOrder(%q) should fail", bad)
		}
	}
}

func TestScanErrorHints(t *testing.T) {
	rescan := scanError(&cubesync.OracleFailure{Err: errors.New("unsolvable")})
	if !strings.Contains(rescan.Error(), "scan the wrong ones again") {
		t.Errorf("oracle failure hint = %q", rescan)
	}

	limit := scanError(fmt.Errorf("depth 7: %w", cubesync.ErrSolverLimit))
	if strings.Contains(limit.Error(), "scan the wrong ones again") {
		t.Errorf("solver limit should not ask for a rescan: %q", limit)
	}
	if !errors.Is(limit, cubesync.ErrSolverLimit) || !strings.Contains(limit.Error(), "oracle.kind") {
		t.Errorf("solver limit hint = %q", limit)
	}
}

func TestParseColors(t *testing.T) {
	want := []cubesync.Color{
		cubesync.Red, cubesync.Red, cubesync.White,
		cubesync.Green, cubesync.Blue, cubesync.Orange,
		cubesync.Yellow, cubesync.Yellow, cubesync.Red,
	}

	word, err := parseColors([]string{"RRWGBOYYR"})
	if err != nil {
		t.Fatalf("parseColors word: %v", err)
	}
	words, err := parseColors(strings.Fields("red r white green blue orange Y yellow red"))
	if err != nil {
		t.Fatalf("parseColors words: %v", err)
	}
	for i := range want {
		if word[i] != want[i] || words[i] != want[i] {
			t.Errorf("sticker %d: word=%v words=%v, want %v", i, word[i], words[i], want[i])
		}
	}

	if _, err := parseColors([]string{"RRWGBOYYX"}); err == nil {
		t.Error("expected error for unknown color letter")
	}
	if _, err := parseColors([]string{"purple"}); err == nil {
		t.Error("expected error for unknown color name")
	}
}

func TestParseChannel(t *testing.T) {
	if v, err := parseChannel("255"); err != nil || v != 255 {
		t.Errorf("parseChannel(255) = %d, %v", v, err)
	}
	for _, s := range []string{"256", "-1", "x"} {
		if _, err := parseChannel(s); err == nil {
			t.Errorf("parseChannel(%q) should fail", s)
		}
	}
}

func TestKeyMove(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"r", "R", true},
		{"R", "R'", true},
		{"u", "U", true},
		{"B", "B'", true},
		{"x", "", false},
		{"enter", "", false},
	}
	for _, tt := range tests {
		m, ok := keyMove(tt.key)
		if ok != tt.ok {
			t.Errorf("keyMove(%q) ok = %v, want %v", tt.key, ok, tt.ok)
			continue
		}
		if ok && m.Notation() != tt.want {
			t.Errorf("keyMove(%q) = %s, want %s", tt.key, m.Notation(), tt.want)
		}
	}
}

func TestDescribeMove(t *testing.T) {
	tests := map[string]string{
		"R":  "right clockwise",
		"U'": "top counter-clockwise",
		"B2": "back half turn",
	}
	for in, want := range tests {
		if got := describeMove(cubesync.MustParseMove(in)); got != want {
			t.Errorf("describeMove(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFindByPrefix(t *testing.T) {
	sessions := []storage.SessionRecord{{SessionID: "abc123"}, {SessionID: "abd456"}}
	rec, err := findByPrefix(sessions, "abd")
	if err != nil || rec.SessionID != "abd456" {
		t.Errorf("findByPrefix(abd) = %v, %v", rec, err)
	}
	if _, err := findByPrefix(sessions, "ab"); err == nil {
		t.Error("expected ambiguous prefix error")
	}
	if _, err := findByPrefix(sessions, "zz"); err == nil {
		t.Error("expected not found error")
	}
}

func testWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()

	db, err := storage.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	stateFile, err := state.NewStateFile(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("NewStateFile: %v", err)
	}

	w := &workspace{db: db, stateFile: stateFile}
	if err := w.create("test"); err != nil {
		t.Fatalf("create: %v", err)
	}
	return w
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestWorkspaceSaveAndLoad(t *testing.T) {
	w := testWorkspace(t)
	if _, err := w.session.TurnNotation("R U"); err != nil {
		t.Fatalf("TurnNotation: %v", err)
	}
	if err := w.save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := w.load(w.stateFile.ActiveSessionID()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cubesync.FormatMoves(w.session.History()); got != "R U" {
		t.Errorf("history after reload = %q, want %q", got, "R U")
	}
}

func TestPlayModelTurnsOneAtATime(t *testing.T) {
	w := testWorkspace(t)
	m := newPlayModel(w, 1)

	_, cmd := m.Update(runeKey('r'))
	if cmd == nil {
		t.Fatal("turn should schedule its end")
	}
	if m.turning != cubesync.Right {
		t.Errorf("turning = %v, want right", m.turning)
	}

	// Dropped while R is in flight.
	m.Update(runeKey('u'))
	if n := len(w.session.History()); n != 1 {
		t.Fatalf("history length = %d, want 1", n)
	}
	if !strings.Contains(plain(m.View()), "[B]") {
		t.Error("view should highlight the turning right face")
	}

	m.Update(turnDoneMsg{})
	if w.session.InFlight() {
		t.Fatal("turn should have ended")
	}

	m.Update(runeKey('U'))
	m.Update(turnDoneMsg{})
	if got := cubesync.FormatMoves(w.session.History()); got != "R U'" {
		t.Errorf("history = %q, want %q", got, "R U'")
	}
}

func TestPlayModelSolve(t *testing.T) {
	w := testWorkspace(t)
	m := newPlayModel(w, 1)

	m.Update(runeKey('f'))
	m.Update(turnDoneMsg{})
	m.Update(runeKey('R'))
	m.Update(turnDoneMsg{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should start a solve")
	}
	msg := cmd()
	if sm, ok := msg.(solvedMsg); !ok || sm.err != nil {
		t.Fatalf("solve message = %#v", msg)
	}
	m.Update(msg)

	if !w.session.IsSolved() {
		t.Errorf("cube should be solved, status %q err %v", m.status, m.err)
	}
	if n := len(w.session.History()); n != 0 {
		t.Errorf("history length after solution = %d, want 0", n)
	}
}

func TestPlayModelScrambleAndQuit(t *testing.T) {
	w := testWorkspace(t)
	m := newPlayModel(w, 7)

	m.Update(runeKey(' '))
	if w.session.IsSolved() {
		t.Fatal("space should scramble")
	}
	if n := len(w.session.History()); n != cubesync.DefaultScrambleLength {
		t.Errorf("history length = %d, want %d", n, cubesync.DefaultScrambleLength)
	}

	_, cmd := m.Update(runeKey('q'))
	if cmd == nil || !m.quitting {
		t.Fatal("q should quit")
	}
	if m.saveErr != nil {
		t.Fatalf("save on quit: %v", m.saveErr)
	}

	snap, err := storage.LoadSnapshot(w.db, w.sessionID)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Moves) != cubesync.DefaultScrambleLength {
		t.Errorf("stored moves = %d, want %d", len(snap.Moves), cubesync.DefaultScrambleLength)
	}
}
