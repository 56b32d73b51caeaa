package cubesync

import "strings"

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Top face when solved
	Yellow Color = 1 // Bottom face when solved
	Red    Color = 2 // Front face when solved
	Orange Color = 3 // Back face when solved
	Blue   Color = 4 // Right face when solved
	Green  Color = 5 // Left face when solved
)

// AllColors returns the six sticker colors in declaration order.
func AllColors() []Color {
	return []Color{White, Yellow, Red, Orange, Blue, Green}
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	case Orange:
		return "orange"
	case Blue:
		return "blue"
	case Green:
		return "green"
	default:
		return "unknown"
	}
}

// Char returns the single-letter form used in the text net.
func (c Color) Char() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Red:
		return "R"
	case Orange:
		return "O"
	case Blue:
		return "B"
	case Green:
		return "G"
	default:
		return "?"
	}
}

// Valid reports whether c is one of the six sticker colors.
func (c Color) Valid() bool {
	return c <= Green
}

// ParseColor accepts a color name or its single letter, case-insensitively.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "yellow", "y":
		return Yellow, true
	case "red", "r":
		return Red, true
	case "orange", "o":
		return Orange, true
	case "blue", "b":
		return Blue, true
	case "green", "g":
		return Green, true
	default:
		return White, false
	}
}
