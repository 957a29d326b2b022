// Package draw renders to ANSI terminals: a scaled half-block canvas, a
// chunked writer for network-friendly output and cursor/colour helpers.
package draw

import (
	"fmt"
	"image/color"
	"io"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockDark      = '▓'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// SetColors selects 24-bit foreground and background colours for
// subsequent output. Clearing the screen afterwards paints it in bg.
func SetColors(w io.Writer, fg, bg color.RGBA) {
	fmt.Fprintf(w, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm", fg.R, fg.G, fg.B, bg.R, bg.G, bg.B)
}

// ResetColors restores the terminal's default colours.
func ResetColors(w io.Writer) {
	fmt.Fprint(w, "\033[0m")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
