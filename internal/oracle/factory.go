package oracle

import (
	"fmt"

	"github.com/SeamusWaldron/cubesync"
	"github.com/SeamusWaldron/cubesync/internal/config"
)

// FromConfig builds the configured oracle wrapped in Checked. Kind "search"
// is the two-phase solver and "bounded" the shortest-path search limited to
// MaxDepth moves. Kind "none" returns nil, which makes Session.Solve fail
// with ErrNoOracle.
func FromConfig(cfg config.OracleConfig) (cubesync.Oracle, error) {
	switch cfg.Kind {
	case "", "search":
		return NewChecked(NewTwoPhase()), nil
	case "bounded":
		return NewChecked(NewSearch(cfg.MaxDepth)), nil
	case "remote":
		if cfg.URL == "" {
			return nil, fmt.Errorf("oracle: remote solver needs a url")
		}
		return NewChecked(NewRemote(cfg.URL, cfg.Timeout)), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("oracle: unknown kind %q", cfg.Kind)
	}
}
