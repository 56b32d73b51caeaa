package cubesync

import "go.uber.org/zap"

// Option configures a Session.
type Option func(*config)

type config struct {
	oracle      Oracle
	moveHistory bool
	log         *zap.SugaredLogger
}

func defaultConfig() *config {
	return &config{
		moveHistory: true,
		log:         zap.NewNop().Sugar(),
	}
}

// WithOracle sets the solver used by Session.Solve.
func WithOracle(o Oracle) Option {
	return func(c *config) {
		c.oracle = o
	}
}

// WithMoveHistory enables or disables move history tracking.
// When enabled (default), turns are logged so Solve can rebuild the state
// from the last baseline. When disabled, Solve always reads the held state.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}

// WithLogger sets the logger used for debug output. A nil logger is ignored.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}
