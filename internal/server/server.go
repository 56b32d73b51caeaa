// Package server shares one cube session over websockets.
//
// Every connected client sees the same cube. Requests are applied through
// the session, which serializes them, and each change is broadcast to all
// clients as a state message. Prometheus metrics are served on /metrics.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesync"
	"github.com/SeamusWaldron/cubesync/internal/metrics"
)

// Server is the websocket front end of a Session.
type Server struct {
	session      *cubesync.Session
	metrics      *metrics.Metrics
	upgrader     websocket.Upgrader
	log          *zap.SugaredLogger
	solveTimeout time.Duration
	persist      func(cubesync.Snapshot) error

	mutex   sync.Mutex
	clients map[string]*client
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics replaces the server's private metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSolveTimeout bounds each solver call.
func WithSolveTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.solveTimeout = d
	}
}

// WithPersist registers a function called with the session state after
// every successful change, such as a database save.
func WithPersist(fn func(cubesync.Snapshot) error) Option {
	return func(s *Server) {
		s.persist = fn
	}
}

// New creates a server for session. It takes over the session's callbacks
// to feed the metrics.
func New(session *cubesync.Session, opts ...Option) *Server {
	s := &Server{
		session:      session,
		metrics:      metrics.New("cubesync"),
		log:          zap.NewNop().Sugar(),
		solveTimeout: 30 * time.Second,
		clients:      make(map[string]*client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	session.OnMove(func(cubesync.Move) { s.metrics.MovesApplied.Inc() })
	session.OnScan(func(cubesync.Face, [9]cubesync.Color) { s.metrics.FacesScanned.Inc() })
	return s
}

// Handler returns the HTTP routes: /ws, /metrics and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() {
		s.log.Infof("cube server listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeClients()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(r.Context(), conn)
}

func (s *Server) handleConnection(ctx context.Context, conn *websocket.Conn) {
	c := newClient(uuid.New().String(), conn)
	s.addClient(c)

	s.log.Infof("New connection from %s, client ID: %s", c.RemoteAddr(), c.id)

	defer func() {
		s.log.Infof("Connection closed from %s, client ID: %s", c.RemoteAddr(), c.id)
		s.removeClient(c.id)
		c.Close()
	}()

	if err := c.Send(stateMessage(s.session)); err != nil {
		return
	}

	for {
		req, err := c.ReadRequest()
		if errors.Is(err, errMalformed) {
			s.reject(c, "", err)
			continue
		}
		if err != nil {
			return
		}
		s.handleRequest(ctx, c, req)
	}
}

func (s *Server) handleRequest(ctx context.Context, c *client, req Request) {
	var err error

	switch req.Type {
	case MsgTypeMove:
		_, err = s.session.TurnNotation(req.Moves)
	case MsgTypeScan:
		err = s.handleScan(req)
	case MsgTypeCompleteScan:
		_, err = s.session.CompleteScan()
	case MsgTypeScramble:
		err = s.handleScramble(req)
	case MsgTypeSolve:
		err = s.handleSolve(ctx, c, req)
	case MsgTypeReset:
		s.session.Reset()
	default:
		err = errUnknownType
	}

	if err != nil {
		s.reject(c, req.Type, err)
		return
	}

	s.changed()
}

func (s *Server) handleScan(req Request) error {
	face, colors, err := parseScan(req)
	if err != nil {
		return err
	}
	return s.session.ScanFace(face, colors)
}

func (s *Server) handleScramble(req Request) error {
	length := req.Length
	if length <= 0 {
		length = cubesync.DefaultScrambleLength
	}
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	return s.session.Scramble(cubesync.NewScrambler(seed).Generate(length))
}

func (s *Server) handleSolve(ctx context.Context, c *client, req Request) error {
	if s.solveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.solveTimeout)
		defer cancel()
	}

	start := time.Now()
	sol, err := s.session.Solve(ctx)
	switch {
	case err == nil:
		s.metrics.ObserveSolve(metrics.OutcomeSolved, time.Since(start))
	case errors.Is(err, cubesync.ErrNoOracle):
		s.metrics.ObserveSolve(metrics.OutcomeNoOracle, 0)
		return err
	case cubesync.IsRescanRequired(err):
		s.metrics.ObserveSolve(metrics.OutcomeRejected, time.Since(start))
		return err
	default:
		s.metrics.ObserveSolve(metrics.OutcomeFailed, time.Since(start))
		return err
	}

	if req.Apply {
		if err := s.session.PlaySolution(sol); err != nil {
			return err
		}
	}

	return c.Send(SolutionMessage{
		Type:     MsgTypeSolution,
		Facelets: sol.Facelets,
		Moves:    cubesync.FormatMoves(sol.Moves),
		Applied:  req.Apply,
	})
}

func (s *Server) reject(c *client, request string, err error) {
	msg := errorMessage(request, err)
	s.metrics.IncError(msg.Kind)
	s.log.Debugw("request rejected", "client", c.id, "request", request, "error", err)
	c.Send(msg)
}

// changed persists the session and broadcasts its state.
func (s *Server) changed() {
	if s.persist != nil {
		if err := s.persist(s.session.Export()); err != nil {
			s.log.Errorf("Failed to persist session: %v", err)
		}
	}
	s.broadcast(stateMessage(s.session))
}

func (s *Server) broadcast(msg any) {
	for _, c := range s.snapshotClients() {
		if err := c.Send(msg); err != nil {
			s.log.Debugw("broadcast failed", "client", c.id, "error", err)
		}
	}
}

func (s *Server) addClient(c *client) {
	s.mutex.Lock()
	s.clients[c.id] = c
	s.mutex.Unlock()
	s.metrics.ConnectedClients.Inc()
}

func (s *Server) removeClient(id string) {
	s.mutex.Lock()
	delete(s.clients, id)
	s.mutex.Unlock()
	s.metrics.ConnectedClients.Dec()
}

func (s *Server) snapshotClients() []*client {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	return out
}

func (s *Server) closeClients() {
	for _, c := range s.snapshotClients() {
		c.Close()
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.clients)
}
