package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubesync"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var stickerColors = map[cubesync.Color]lipgloss.Color{
	cubesync.White:  lipgloss.Color("#FFFFFF"),
	cubesync.Yellow: lipgloss.Color("#FFD500"),
	cubesync.Red:    lipgloss.Color("#C41E3A"),
	cubesync.Orange: lipgloss.Color("#FF5800"),
	cubesync.Blue:   lipgloss.Color("#0051BA"),
	cubesync.Green:  lipgloss.Color("#009E60"),
}

const stickerWidth = 3

func renderSticker(c cubesync.Color, highlight bool) string {
	text := " " + c.Char() + " "
	if highlight {
		text = "[" + c.Char() + "]"
	}
	return lipgloss.NewStyle().
		Background(stickerColors[c]).
		Foreground(lipgloss.Color("#000000")).
		Bold(highlight).
		Render(text)
}

// renderNet draws the cube unfolded as a cross with colored stickers. The
// stickers of the highlighted face are bracketed; pass a face for which
// Valid is false to highlight nothing.
func renderNet(c *cubesync.Cube, highlight cubesync.Face) string {
	var b strings.Builder
	pad := strings.Repeat(" ", 3*stickerWidth)

	row := func(face cubesync.Face, r int) {
		stickers := c.Get(face)
		for col := 0; col < 3; col++ {
			b.WriteString(renderSticker(stickers[r*3+col], face == highlight))
		}
	}

	for r := 0; r < 3; r++ {
		b.WriteString(pad)
		row(cubesync.Top, r)
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		for _, face := range []cubesync.Face{cubesync.Left, cubesync.Front, cubesync.Right, cubesync.Back} {
			row(face, r)
		}
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		b.WriteString(pad)
		row(cubesync.Bottom, r)
		b.WriteByte('\n')
	}
	return b.String()
}

// describeMove spells out a move for the status line, e.g. "right counter-clockwise".
func describeMove(m cubesync.Move) string {
	switch m.Turn {
	case cubesync.CW:
		return m.Face.String() + " clockwise"
	case cubesync.CCW:
		return m.Face.String() + " counter-clockwise"
	case cubesync.Double:
		return m.Face.String() + " half turn"
	default:
		return m.Notation()
	}
}

// formatTail renders the last n moves, eliding the rest.
func formatTail(moves []cubesync.Move, n int) string {
	if len(moves) <= n {
		return cubesync.FormatMoves(moves)
	}
	return "... " + cubesync.FormatMoves(moves[len(moves)-n:])
}

func faceList(faces []cubesync.Face) string {
	if len(faces) == 0 {
		return "none"
	}
	names := make([]string, len(faces))
	for i, f := range faces {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

func missingFaces(scanned []cubesync.Face) []cubesync.Face {
	have := make(map[cubesync.Face]bool, len(scanned))
	for _, f := range scanned {
		have[f] = true
	}
	var missing []cubesync.Face
	for _, f := range cubesync.AllFaces() {
		if !have[f] {
			missing = append(missing, f)
		}
	}
	return missing
}
