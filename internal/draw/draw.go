// Package draw renders to ANSI terminals: a half-block pixel canvas plus
// helpers for cursor control and chunked output.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Shade characters from lightest to darkest.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Bar renders a horizontal meter of width cells filled to fraction.
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	runes := make([]rune, width)
	for i := range runes {
		cell := fraction*float64(width) - float64(i)
		runes[i] = ShadeLevel(cell)
	}
	return string(runes)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
