package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesync"
	"github.com/SeamusWaldron/cubesync/internal/logger"
	"github.com/SeamusWaldron/cubesync/internal/storage"
)

var solveApply bool

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Ask the solver for a solution",
	Long: `Send the active cube to the configured solver and print the move
sequence that solves it. With --apply, the solution is also played on the
cube, which then becomes the new baseline.

Every solver call is recorded; see 'cubesync history'.`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&solveApply, "apply", false, "Play the solution on the cube")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx := context.Background()
	if cfg != nil && cfg.Oracle.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Oracle.Timeout)
		defer cancel()
	}

	start := time.Now()
	sol, solveErr := w.session.Solve(ctx)
	elapsed := time.Since(start)

	if errors.Is(solveErr, cubesync.ErrNoOracle) {
		return fmt.Errorf("%w (set oracle.kind in config.yaml)", solveErr)
	}

	repo := storage.NewSolveRepository(w.db)
	facelets := sol.Facelets
	if facelets == "" {
		facelets = w.session.Facelets()
	}
	solveID, err := repo.Create(w.sessionID, facelets, cubesync.FormatMoves(sol.Moves), solveErr, elapsed)
	if err != nil {
		logger.Log.Warnw("failed to record solve", "error", err)
	}

	if solveErr != nil {
		return scanError(solveErr)
	}

	if len(sol.Moves) == 0 {
		fmt.Println("Already solved.")
		return nil
	}
	fmt.Printf("Solution (%d moves, %s): %s\n", len(sol.Moves), formatDuration(elapsed), moveStyle.Render(cubesync.FormatMoves(sol.Moves)))

	if !solveApply {
		return nil
	}

	if err := w.session.PlaySolution(sol); err != nil {
		return err
	}
	if err := w.save(); err != nil {
		return err
	}
	if solveID != "" {
		if err := repo.MarkApplied(solveID); err != nil {
			logger.Log.Warnw("failed to mark solve applied", "solve", solveID, "error", err)
		}
	}
	fmt.Println(titleStyle.Render("Solution applied."))
	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}
