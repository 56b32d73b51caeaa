package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SeamusWaldron/cubesync"
	"github.com/SeamusWaldron/cubesync/internal/oracle"
)

type testClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func startServer(t *testing.T, session *cubesync.Session, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(session, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *testClient {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	c := &testClient{t: t, conn: conn}
	if got := c.read(); got["type"] != MsgTypeState {
		t.Fatalf("expected initial state, got %v", got)
	}
	return c
}

func (c *testClient) send(req any) {
	c.t.Helper()
	if err := c.conn.WriteJSON(req); err != nil {
		c.t.Fatalf("write: %v", err)
	}
}

func (c *testClient) read() map[string]any {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg map[string]any
	if err := c.conn.ReadJSON(&msg); err != nil {
		c.t.Fatalf("read: %v", err)
	}
	return msg
}

func TestMoveBroadcastsState(t *testing.T) {
	_, ts := startServer(t, cubesync.NewSession())
	a := dial(t, ts)
	b := dial(t, ts)

	a.send(Request{Type: MsgTypeMove, Moves: "R U"})

	want := cubesync.NewCube()
	want.Apply(cubesync.R, cubesync.U)
	for _, c := range []*testClient{a, b} {
		msg := c.read()
		if msg["type"] != MsgTypeState {
			t.Fatalf("expected state, got %v", msg)
		}
		if msg["facelets"] != cubesync.EncodeUnchecked(want) {
			t.Errorf("facelets = %v", msg["facelets"])
		}
		if msg["history"] != "R U" || msg["solved"] != false {
			t.Errorf("unexpected state %v", msg)
		}
	}
}

func TestBadMoveRejectedOnlyToSender(t *testing.T) {
	session := cubesync.NewSession()
	_, ts := startServer(t, session)
	a := dial(t, ts)

	a.send(Request{Type: MsgTypeMove, Moves: "R X"})
	msg := a.read()
	if msg["type"] != MsgTypeError || msg["kind"] != "parse" || msg["request"] != MsgTypeMove {
		t.Errorf("unexpected reply %v", msg)
	}
	if !session.IsSolved() {
		t.Error("rejected move changed the cube")
	}

	a.send(Request{Type: "dance"})
	if msg := a.read(); msg["kind"] != "bad_request" {
		t.Errorf("unexpected reply %v", msg)
	}

	a.conn.WriteMessage(websocket.TextMessage, []byte("{not json"))
	if msg := a.read(); msg["type"] != MsgTypeError || msg["kind"] != "bad_request" {
		t.Errorf("unexpected reply %v", msg)
	}
}

func TestScanFlow(t *testing.T) {
	_, ts := startServer(t, cubesync.NewSession())
	c := dial(t, ts)

	c.send(Request{Type: MsgTypeCompleteScan})
	if msg := c.read(); msg["kind"] != "scan_incomplete" {
		t.Fatalf("unexpected reply %v", msg)
	}

	solved := cubesync.NewCube()
	for _, face := range cubesync.AllFaces() {
		var colors []string
		for _, color := range solved.Get(face) {
			colors = append(colors, color.String())
		}
		c.send(Request{Type: MsgTypeScan, Face: face.String(), Colors: colors})
		if msg := c.read(); msg["type"] != MsgTypeState {
			t.Fatalf("scan %s: %v", face, msg)
		}
	}

	c.send(Request{Type: MsgTypeCompleteScan})
	msg := c.read()
	if msg["type"] != MsgTypeState || msg["facelets"] != cubesync.SolvedFacelets {
		t.Errorf("unexpected reply %v", msg)
	}

	c.send(Request{Type: MsgTypeScan, Face: "front", Colors: []string{"red"}})
	if msg := c.read(); msg["kind"] != "validation" {
		t.Errorf("short scan: %v", msg)
	}
	c.send(Request{Type: MsgTypeScan, Face: "middle", Colors: nil})
	if msg := c.read(); msg["kind"] != "validation" {
		t.Errorf("unknown face: %v", msg)
	}
}

func TestScrambleAndSolve(t *testing.T) {
	session := cubesync.NewSession(cubesync.WithOracle(oracle.NewChecked(oracle.NewSearch(3))))
	_, ts := startServer(t, session)
	c := dial(t, ts)

	seed := int64(7)
	c.send(Request{Type: MsgTypeScramble, Length: 3, Seed: &seed})
	msg := c.read()
	if msg["type"] != MsgTypeState || msg["solved"] != false {
		t.Fatalf("unexpected reply %v", msg)
	}
	want := cubesync.FormatMoves(cubesync.NewScrambler(7).Generate(3))
	if msg["history"] != want {
		t.Errorf("history = %v, want %s", msg["history"], want)
	}

	c.send(Request{Type: MsgTypeSolve, Apply: true})
	sol := c.read()
	if sol["type"] != MsgTypeSolution || sol["applied"] != true {
		t.Fatalf("unexpected reply %v", sol)
	}
	state := c.read()
	if state["type"] != MsgTypeState || state["solved"] != true {
		t.Errorf("cube not solved after applied solution: %v", state)
	}
	if !session.IsSolved() {
		t.Error("session not solved")
	}
}

func TestSolveWithoutOracle(t *testing.T) {
	_, ts := startServer(t, cubesync.NewSession())
	c := dial(t, ts)
	c.send(Request{Type: MsgTypeSolve})
	if msg := c.read(); msg["kind"] != "no_oracle" {
		t.Errorf("unexpected reply %v", msg)
	}
}

func TestPersistCalledOnChange(t *testing.T) {
	var mu sync.Mutex
	var saved []string
	persist := func(snap cubesync.Snapshot) error {
		mu.Lock()
		defer mu.Unlock()
		saved = append(saved, cubesync.FormatMoves(snap.Moves))
		return nil
	}
	_, ts := startServer(t, cubesync.NewSession(), WithPersist(persist))
	c := dial(t, ts)

	c.send(Request{Type: MsgTypeMove, Moves: "F"})
	c.read()
	c.send(Request{Type: MsgTypeReset})
	c.read()

	mu.Lock()
	defer mu.Unlock()
	if len(saved) != 2 || saved[0] != "F" || saved[1] != "" {
		t.Errorf("saved = %q", saved)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv, ts := startServer(t, cubesync.NewSession())
	c := dial(t, ts)
	c.send(Request{Type: MsgTypeMove, Moves: "R U R'"})
	c.read()

	if srv.ClientCount() != 1 {
		t.Errorf("ClientCount = %d", srv.ClientCount())
	}

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("healthz = %q", body)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{"cubesync_moves_applied_total 3", "cubesync_connected_clients 1"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := New(cubesync.NewSession())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
