package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesync"
	"github.com/SeamusWaldron/cubesync/internal/logger"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive cube",
	Long: `Start an interactive TUI for turning the active cube.

Keyboard shortcuts:
  u d l r f b   - Turn a face clockwise
  U D L R F B   - Turn a face counter-clockwise (shift)
  space         - Scramble
  enter         - Solve and play the solution
  backspace     - Reset to solved
  q/Esc         - Quit

Only one turn animates at a time; keys pressed during a turn are ignored.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// turnDuration is how long a turn stays highlighted.
const turnDuration = 150 * time.Millisecond

// Messages
type turnDoneMsg struct{}
type solvedMsg struct {
	solution cubesync.Solution
	err      error
}

// Model
type playModel struct {
	w         *workspace
	scrambler *cubesync.Scrambler

	// Turn being animated, if any
	turning cubesync.Face
	solving bool

	status   string
	err      error
	saveErr  error
	quitting bool
}

func newPlayModel(w *workspace, seed int64) *playModel {
	return &playModel{
		w:         w,
		scrambler: cubesync.NewScrambler(seed),
		turning:   -1,
	}
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

func (m *playModel) endTurnCmd() tea.Cmd {
	return tea.Tick(turnDuration, func(time.Time) tea.Msg {
		return turnDoneMsg{}
	})
}

func (m *playModel) solveCmd() tea.Cmd {
	session := m.w.session
	timeout := 30 * time.Second
	if cfg != nil && cfg.Oracle.Timeout > 0 {
		timeout = cfg.Oracle.Timeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		sol, err := session.Solve(ctx)
		return solvedMsg{solution: sol, err: err}
	}
}

// keyMove maps u/d/l/r/f/b to clockwise turns and their shifted letters to
// counter-clockwise turns.
func keyMove(key string) (cubesync.Move, bool) {
	if len(key) != 1 {
		return cubesync.Move{}, false
	}
	turn := cubesync.CW
	if key != strings.ToLower(key) {
		turn = cubesync.CCW
	}
	face, ok := cubesync.ParseFace(key)
	if !ok {
		return cubesync.Move{}, false
	}
	return cubesync.Move{Face: face, Turn: turn}, true
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.w.session.EndTurn()
			m.saveErr = m.w.save()
			return m, tea.Quit

		case " ":
			moves := m.scrambler.Generate(cubesync.DefaultScrambleLength)
			m.setErr(m.w.session.Scramble(moves))
			if m.err == nil {
				m.status = "Scramble: " + cubesync.FormatMoves(moves)
			}

		case "enter":
			if !m.solving {
				m.solving = true
				m.err = nil
				m.status = "Solving..."
				return m, m.solveCmd()
			}

		case "backspace":
			if !m.w.session.InFlight() {
				m.w.session.Reset()
				m.err = nil
				m.status = "Reset"
			}

		default:
			mv, ok := keyMove(key)
			if !ok {
				return m, nil
			}
			if err := m.w.session.BeginTurn(mv); err != nil {
				// ErrTurnInFlight: drop the key
				if !errors.Is(err, cubesync.ErrTurnInFlight) {
					m.err = err
				}
				return m, nil
			}
			m.turning = mv.Face
			m.err = nil
			m.status = fmt.Sprintf("%s: %s", mv, describeMove(mv))
			return m, m.endTurnCmd()
		}

	case turnDoneMsg:
		m.w.session.EndTurn()
		m.turning = -1
		if err := m.w.save(); err != nil {
			logger.Log.Warnw("failed to save session", "error", err)
		}

	case solvedMsg:
		m.solving = false
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		if len(msg.solution.Moves) == 0 {
			m.status = "Already solved"
			return m, nil
		}
		if err := m.w.session.PlaySolution(msg.solution); err != nil {
			m.setErr(err)
			return m, nil
		}
		m.status = fmt.Sprintf("Solved in %d: %s", len(msg.solution.Moves), cubesync.FormatMoves(msg.solution.Moves))
	}

	return m, nil
}

func (m *playModel) setErr(err error) {
	m.err = err
	if err != nil {
		m.status = ""
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("cubesync"))
	b.WriteString("\n\n")

	b.WriteString(renderNet(m.w.session.Cube(), m.turning))
	b.WriteString("\n")

	moves := m.w.session.History()
	b.WriteString(fmt.Sprintf("Moves: %d\n", len(moves)))
	if len(moves) > 0 {
		b.WriteString(moveStyle.Render(formatTail(moves, 20)))
		b.WriteString("\n")
	}
	if m.w.session.IsSolved() {
		b.WriteString(titleStyle.Render("SOLVED"))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("u/d/l/r/f/b=turn  shift=prime  space=scramble  enter=solve  backspace=reset  q=quit"))
	b.WriteString("\n")

	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	model := newPlayModel(w, time.Now().UnixNano())
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return model.saveErr
}
