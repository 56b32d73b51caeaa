package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesync"
	"github.com/SeamusWaldron/cubesync/internal/analysis"
	"github.com/SeamusWaldron/cubesync/internal/storage"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Start a new session with a solved cube",
	Long:  `Create a new session holding a solved cube and make it the active session for later commands.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNew,
}

var turnCmd = &cobra.Command{
	Use:   "turn <moves>",
	Short: "Turn faces using standard notation",
	Long: `Apply a move sequence such as "R U R' U'" to the active cube.

Moves are U, D, L, R, F, B with an optional ' (counter-clockwise) or 2
(half turn). Nothing is applied if any token is malformed.`,
	Example: `  cubesync turn "R U R' U'"
  cubesync turn R U2 F'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTurn,
}

var (
	scrambleLength int
	scrambleSeed   int64
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Reset and scramble the cube",
	Long:  `Reset the active cube to solved, then apply a random scramble. The same seed always produces the same scramble.`,
	RunE:  runScramble,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Return the cube to solved and clear the history",
	RunE:  runReset,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active cube",
	RunE:  runShow,
}

var (
	historySimplify bool
	historyStats    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show moves and solver calls since the last baseline",
	RunE:  runHistory,
}

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions [id]",
	Short: "List sessions or switch the active one",
	Long:  `Without arguments, list recent sessions. With an ID (or unique ID prefix), make that session active.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessions,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and active session information",
	RunE:  runStatus,
}

func init() {
	scrambleCmd.Flags().IntVarP(&scrambleLength, "length", "n", cubesync.DefaultScrambleLength, "Number of scramble moves")
	scrambleCmd.Flags().Int64Var(&scrambleSeed, "seed", 0, "Random seed (default: current time)")
	historyCmd.Flags().BoolVar(&historySimplify, "simplify", false, "Also show the simplified sequence")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show wasted moves and repeated sequences")
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 10, "Number of sessions to list")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(turnCmd)
	rootCmd.AddCommand(scrambleCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(statusCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(false)
	if err != nil {
		return err
	}
	defer w.Close()

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if err := w.create(name); err != nil {
		return err
	}

	fmt.Printf("Started session: %s\n", w.sessionID)
	return nil
}

func runTurn(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	moves, err := w.session.TurnNotation(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := w.save(); err != nil {
		return err
	}

	fmt.Printf("Applied: %s\n", moveStyle.Render(cubesync.FormatMoves(moves)))
	if w.session.IsSolved() {
		fmt.Println(titleStyle.Render("Solved!"))
	}
	return nil
}

func runScramble(cmd *cobra.Command, args []string) error {
	if scrambleLength < 0 {
		return fmt.Errorf("scramble length must not be negative")
	}

	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	seed := scrambleSeed
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().UnixNano()
	}
	moves := cubesync.NewScrambler(seed).Generate(scrambleLength)
	if err := w.session.Scramble(moves); err != nil {
		return err
	}
	if err := w.save(); err != nil {
		return err
	}

	fmt.Printf("Scramble: %s\n", moveStyle.Render(cubesync.FormatMoves(moves)))
	fmt.Printf("Seed: %d\n", seed)
	fmt.Println()
	fmt.Print(renderNet(w.session.Cube(), -1))
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	w.session.Reset()
	if err := w.save(); err != nil {
		return err
	}
	fmt.Println("Cube reset to solved.")
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Print(renderNet(w.session.Cube(), -1))
	fmt.Println()
	fmt.Printf("Facelets: %s\n", w.session.Facelets())
	if w.session.IsSolved() {
		fmt.Printf("State:    %s\n", titleStyle.Render("solved"))
	} else {
		fmt.Printf("State:    %s\n", statusStyle.Render("scrambled"))
	}
	if scanned := w.session.Scanned(); len(scanned) > 0 {
		fmt.Printf("Scanned:  %s (missing: %s)\n", faceList(scanned), faceList(missingFaces(scanned)))
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	moves := w.session.History()
	fmt.Printf("Moves since baseline: %d\n", len(moves))
	if len(moves) > 0 {
		fmt.Printf("  %s\n", moveStyle.Render(cubesync.FormatMoves(moves)))
	}
	if historySimplify && len(moves) > 0 {
		simplified := cubesync.Simplify(moves)
		fmt.Printf("Simplified (%d): %s\n", len(simplified), cubesync.FormatMoves(simplified))
	}
	if historyStats && len(moves) > 0 {
		fmt.Println()
		printAnalysis(analysis.Analyze(moves))
	}

	solves, err := storage.NewSolveRepository(w.db).GetBySession(w.sessionID, 10)
	if err != nil {
		return err
	}
	if len(solves) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent solver calls:")
	for _, s := range solves {
		result := ""
		switch {
		case s.Error != nil:
			result = errorStyle.Render("error: " + *s.Error)
		case s.Solution != nil:
			result = *s.Solution
			if result == "" {
				result = "(already solved)"
			}
		}
		applied := ""
		if s.Applied {
			applied = " [applied]"
		}
		fmt.Printf("  %s  %6dms  %s%s\n", s.SolvedAt.Local().Format("2006-01-02 15:04:05"), s.DurationMs, result, applied)
	}
	return nil
}

func printAnalysis(r *analysis.Report) {
	fmt.Printf("Efficiency: %.0f%% (%d of %d moves wasted)\n", r.Efficiency()*100, r.Wasted(), r.Moves)

	for _, c := range r.Cancellations {
		fmt.Printf("  cancel  #%d  %s %s\n", c.Index+1, c.First, c.Next)
	}
	for _, m := range r.Merges {
		fmt.Printf("  merge   #%d  %s %s -> %s\n", m.Index+1, m.First, m.Next, m.Merged)
	}

	if len(r.Repeats) == 0 {
		return
	}
	fmt.Println("Repeated sequences:")
	for _, rep := range r.Repeats {
		fmt.Printf("  %dx  %s\n", rep.Count, cubesync.FormatMoves(rep.Moves))
	}
}

func runSessions(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(false)
	if err != nil {
		return err
	}
	defer w.Close()

	repo := storage.NewSessionRepository(w.db)
	sessions, err := repo.List(sessionsLimit)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if len(sessions) == 0 {
			fmt.Println("No sessions. Run 'cubesync new' to start one.")
			return nil
		}
		for _, s := range sessions {
			marker := " "
			if s.SessionID == w.sessionID {
				marker = "*"
			}
			name := ""
			if s.Name != nil {
				name = *s.Name
			}
			fmt.Printf("%s %s  %s  %s\n", marker, s.SessionID, s.UpdatedAt.Local().Format("2006-01-02 15:04"), name)
		}
		return nil
	}

	rec, err := repo.Get(args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		rec, err = findByPrefix(sessions, args[0])
		if err != nil {
			return err
		}
	}
	if err := w.stateFile.SetActiveSession(rec.SessionID); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	fmt.Printf("Active session: %s\n", rec.SessionID)
	return nil
}

func findByPrefix(sessions []storage.SessionRecord, prefix string) (*storage.SessionRecord, error) {
	var found *storage.SessionRecord
	for i := range sessions {
		if strings.HasPrefix(sessions[i].SessionID, prefix) {
			if found != nil {
				return nil, fmt.Errorf("session prefix %q is ambiguous", prefix)
			}
			found = &sessions[i]
		}
	}
	if found == nil {
		return nil, fmt.Errorf("session %s not found", prefix)
	}
	return found, nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(false)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Println("cubesync Status")
	fmt.Println("===============")
	fmt.Println()

	fmt.Printf("Database: %s\n", w.db.Path())
	if v, err := w.db.CurrentVersion(); err == nil {
		fmt.Printf("Schema version: %d\n", v)
	}
	fmt.Printf("Solver: %s\n", cfg.Oracle.Kind)
	fmt.Println()

	if w.session == nil {
		fmt.Println("No active session")
		return nil
	}

	fmt.Printf("Active session: %s\n", w.sessionID)
	count, err := storage.NewMoveRepository(w.db).Count(w.sessionID)
	if err == nil {
		fmt.Printf("Moves since baseline: %d\n", count)
	}
	if w.session.IsSolved() {
		fmt.Println("Cube: solved")
	} else {
		fmt.Println("Cube: scrambled")
	}
	return nil
}
