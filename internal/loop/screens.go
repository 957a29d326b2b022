package loop

import (
	"fmt"
	"io"
	"time"

	"github.com/tomz197/invasion/internal/draw"
	"github.com/tomz197/invasion/internal/loop/config"
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayIdle
	overlayShutdown
)

// termRenderer draws frames on an ANSI terminal with the half-block canvas.
type termRenderer struct {
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	termSizeFunc draw.TermSizeFunc
	logicalW     int
	logicalH     int

	overlay      overlayKind
	idleLeft     time.Duration
	shutdownLeft time.Duration

	// Previous frame's UI mode; a change forces a full clear
	prevShowPlay bool
	prevPaused   bool
	prevOverlay  overlayKind

	shipPoints [3]draw.Point
}

var _ Renderer = (*termRenderer)(nil)

func newTermRenderer(w io.Writer, sizeFunc draw.TermSizeFunc, s *Settings) *termRenderer {
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(sizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := fitTermSize(termWidth, termHeight, s.ScreenWidth, s.ScreenHeight)

	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, float64(s.ScreenWidth), float64(s.ScreenHeight))
	canvas.SetOffset(offsetCol, offsetRow)

	return &termRenderer{
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		termSizeFunc: sizeFunc,
		logicalW:     s.ScreenWidth,
		logicalH:     s.ScreenHeight,
		prevShowPlay: true,
	}
}

// fitTermSize picks the largest render area that keeps the playfield's
// aspect ratio, fits the terminal and stays within the max render
// resolution, and computes the offset that centres it.
// A terminal cell holds two canvas pixels stacked vertically, so a playfield
// of w×h units needs a w : h/2 cell ratio.
func fitTermSize(termWidth, termHeight, logicalW, logicalH int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)

	if logicalW > 0 && logicalH > 0 {
		if renderWidth*logicalH > renderHeight*2*logicalW {
			renderWidth = renderHeight * 2 * logicalW / logicalH
		} else {
			renderHeight = renderWidth * logicalH / (2 * logicalW)
		}
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// updateScreen handles terminal resize. On actual size changes the terminal
// is cleared to remove residual pixels outside the new canvas area.
func (r *termRenderer) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(r.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := fitTermSize(termWidth, termHeight, r.logicalW, r.logicalH)

	if renderWidth != r.canvas.TerminalWidth() || renderHeight != r.canvas.TerminalHeight() ||
		offsetCol != r.canvas.OffsetCol() || offsetRow != r.canvas.OffsetRow() {
		r.clear()
	}

	r.canvas.Resize(renderWidth, renderHeight)
	r.canvas.SetOffset(offsetCol, offsetRow)
	r.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clear queues a full terminal clear and makes the canvas redraw every cell.
func (r *termRenderer) clear() {
	r.chunkWriter.WriteString("\033[H\033[2J")
	r.canvas.ForceRedraw()
}

// Render draws one frame and flushes it to the terminal.
func (r *termRenderer) Render(f *Frame) error {
	// Text from the previous mode would otherwise stay on screen
	if f.ShowPlay != r.prevShowPlay || f.Paused != r.prevPaused || r.overlay != r.prevOverlay {
		r.clear()
		r.prevShowPlay = f.ShowPlay
		r.prevPaused = f.Paused
		r.prevOverlay = r.overlay
	}

	c := r.canvas
	c.Clear()

	for _, a := range f.Aliens {
		c.FillRect(a.X, a.Y, a.W, a.H)
	}
	for _, p := range f.Projectiles {
		c.FillRect(p.X, p.Y, p.W, p.H)
	}

	// Ship is a triangle pointing up
	r.shipPoints[0] = draw.Point{X: f.Ship.CenterX(), Y: f.Ship.Top()}
	r.shipPoints[1] = draw.Point{X: f.Ship.Right(), Y: f.Ship.Bottom()}
	r.shipPoints[2] = draw.Point{X: f.Ship.Left(), Y: f.Ship.Bottom()}
	c.DrawPolygon(r.shipPoints[:], true)

	if f.ShowPlay && r.overlay == overlayNone {
		b := f.Play.Rect
		c.StrokeRect(b.X, b.Y, b.W, b.H)
	}

	if err := c.Render(r.chunkWriter); err != nil {
		return err
	}
	if err := c.RenderBorder(r.chunkWriter); err != nil {
		return err
	}

	r.drawUI(f)
	return r.chunkWriter.Flush()
}

// drawUI draws the text overlay on top of the canvas.
func (r *termRenderer) drawUI(f *Frame) {
	termWidth := r.canvas.TerminalWidth()
	termHeight := r.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch r.overlay {
	case overlayShutdown:
		r.drawShutdownScreen(centerX, centerY)
		return
	case overlayIdle:
		r.drawInactivityScreen(centerX, centerY)
		return
	}

	r.drawHUD(f, termWidth, termHeight)
	if f.ShowPlay {
		r.drawPlayButton(f)
	}
}

// drawHUD draws score, level and lives on the top row.
// Fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (r *termRenderer) drawHUD(f *Frame, termWidth, termHeight int) {
	cw := r.chunkWriter
	cw.WriteAt(2, 1, fmt.Sprintf("Score: %-8d", f.Score))

	levelText := fmt.Sprintf("Level: %-3d", f.Level+1)
	cw.WriteAt(termWidth/2-len(levelText)/2, 1, levelText)

	livesText := fmt.Sprintf("Ships: %-2d", f.LivesLeft)
	cw.WriteAt(termWidth-len(livesText)-1, 1, livesText)

	if f.Paused {
		msg := "SHIP LOST"
		cw.WriteAt(termWidth/2-len(msg)/2, termHeight/2, msg)
	}
}

// drawPlayButton writes the button label and the controls below it.
func (r *termRenderer) drawPlayButton(f *Frame) {
	cw := r.chunkWriter
	b := f.Play.Rect

	col, row := r.canvas.LogicalToTerminal(b.CenterX(), b.CenterY())
	cw.WriteAt(col-len(f.Play.Label)/2, row, f.Play.Label)

	hint := "Click Play or press ENTER"
	_, bottom := r.canvas.LogicalToTerminal(b.CenterX(), b.Bottom())
	cw.WriteAt(col-len(hint)/2, bottom+2, hint)

	controls := "A D / < >  Move    SPACE  Fire    Q  Quit"
	cw.WriteAt(col-len(controls)/2, bottom+3, controls)
}

// drawInactivityScreen draws the inactivity warning screen.
func (r *termRenderer) drawInactivityScreen(centerX, centerY int) {
	cw := r.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf("You have been inactive for too long. You will be disconnected in %3d seconds.",
		max(int(r.idleLeft.Seconds()), 0))
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawShutdownScreen draws the server shutdown notice with its countdown.
func (r *termRenderer) drawShutdownScreen(centerX, centerY int) {
	cw := r.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf("Disconnecting in %2d seconds. Thanks for playing!", max(int(r.shutdownLeft.Seconds()+0.999), 0))
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press Q to leave now"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}
