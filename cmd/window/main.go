package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/invasion/internal/config"
	"github.com/tomz197/invasion/internal/input"
	"github.com/tomz197/invasion/internal/loop"
	loopconfig "github.com/tomz197/invasion/internal/loop/config"
	"github.com/tomz197/invasion/internal/physics"
)

var (
	shipColor       = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	alienColor      = color.RGBA{R: 70, G: 130, B: 60, A: 255}
	projectileColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	buttonColor     = color.RGBA{R: 0, G: 135, B: 0, A: 255}
	textColor       = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	buttonTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// binding maps a physical key to a game key.
type binding struct {
	key ebiten.Key
	to  input.Key
}

var bindings = []binding{
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyA, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyD, input.KeyRight},
	{ebiten.KeySpace, input.KeyFire},
	{ebiten.KeyQ, input.KeyQuit},
	{ebiten.KeyEnter, input.KeyStart},
	{ebiten.KeyP, input.KeyStart},
}

// app adapts a Game to ebiten's Update/Draw/Layout cycle.
type app struct {
	game   *loop.Game
	frame  loop.Frame
	events []input.Event

	cursorHidden bool
}

func newApp(width, height int, logger *log.Logger) *app {
	a := &app{}
	a.game = loop.NewGame(loop.NewSettings(width, height), loop.Hooks{
		GameStarted:      func() { logger.Info("game started") },
		FormationCleared: func(level int) { logger.Info("formation cleared", "level", level) },
		ShipHit:          func(livesLeft int) { logger.Info("ship hit", "livesLeft", livesLeft) },
		GameOver:         func(score int) { logger.Info("game over", "score", score) },
	})
	return a
}

// Update collects the input of this tick and advances the game.
func (a *app) Update() error {
	a.events = a.events[:0]

	if ebiten.IsWindowBeingClosed() {
		a.events = append(a.events, input.Event{Type: input.EventQuit})
	}
	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			a.events = append(a.events, input.Event{Type: input.EventKeyDown, Key: b.to})
		}
		if inpututil.IsKeyJustReleased(b.key) {
			a.events = append(a.events, input.Event{Type: input.EventKeyUp, Key: b.to})
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.events = append(a.events, input.Event{Type: input.EventClick, X: float64(x), Y: float64(y)})
	}

	a.game.Tick(a.events)
	if !a.game.Running() {
		return ebiten.Termination
	}

	// Pointer is hidden while playing
	if hide := a.game.Active(); hide != a.cursorHidden {
		if hide {
			ebiten.SetCursorMode(ebiten.CursorModeHidden)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
		a.cursorHidden = hide
	}
	return nil
}

// Draw renders the latest frame.
func (a *app) Draw(screen *ebiten.Image) {
	a.game.Snapshot(&a.frame)
	f := &a.frame

	screen.Fill(f.Background)

	for _, r := range f.Aliens {
		drawAlien(screen, r)
	}
	for _, r := range f.Projectiles {
		fillRect(screen, r, projectileColor)
	}
	drawShip(screen, f.Ship)

	hud := fmt.Sprintf("Score: %d   Level: %d   Ships: %d", f.Score, f.Level+1, f.LivesLeft)
	text.Draw(screen, hud, basicfont.Face7x13, 10, 20, textColor)

	if f.ShowPlay {
		b := f.Play.Rect
		fillRect(screen, b, buttonColor)
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, textColor, false)
		bounds := text.BoundString(basicfont.Face7x13, f.Play.Label)
		tx := int(b.CenterX()) - bounds.Dx()/2
		ty := int(b.CenterY()) + bounds.Dy()/2
		text.Draw(screen, f.Play.Label, basicfont.Face7x13, tx, ty, buttonTextColor)
	}
}

// Layout keeps the playfield at its logical size; ebiten scales it to the window.
func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Screen.Width, a.game.Screen.Height
}

func fillRect(dst *ebiten.Image, r physics.Rect, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

// drawShip draws a hull with a cannon on top.
func drawShip(dst *ebiten.Image, r physics.Rect) {
	hullY := r.Y + r.H/3
	vector.DrawFilledRect(dst, float32(r.X), float32(hullY), float32(r.W), float32(r.Bottom()-hullY), shipColor, false)
	cannonW := r.W / 5
	vector.DrawFilledRect(dst, float32(r.CenterX()-cannonW/2), float32(r.Y), float32(cannonW), float32(r.H/3), shipColor, false)
}

// drawAlien draws a body with two eyes.
func drawAlien(dst *ebiten.Image, r physics.Rect) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y+r.H/4), float32(r.W), float32(r.H/2), alienColor, false)
	vector.DrawFilledRect(dst, float32(r.X+r.W/4), float32(r.Y), float32(r.W/2), float32(r.H), alienColor, false)
	eye := float32(r.W / 8)
	vector.DrawFilledRect(dst, float32(r.X+r.W/4), float32(r.Y+r.H/3), eye, eye, color.White, false)
	vector.DrawFilledRect(dst, float32(r.X+r.W*3/4)-eye, float32(r.Y+r.H/3), eye, eye, color.White, false)
}

func main() {
	logger := config.NewLogger("window")

	width := config.GetEnvInt("WINDOW_WIDTH", loopconfig.ViewWidth)
	height := config.GetEnvInt("WINDOW_HEIGHT", loopconfig.ViewHeight)
	logger.Info("window config", "width", width, "height", height)

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Alien Invasion")
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(loopconfig.TickRate)

	if err := ebiten.RunGame(newApp(width, height, logger)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
}
