package ebitenhost

import (
	"image"
	"image/color"
	"math"

	"github.com/bethropolis/poxi/internal/app"
	"github.com/bethropolis/poxi/internal/event"
	"github.com/bethropolis/poxi/internal/input"
	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/modehandler"
	"github.com/bethropolis/poxi/internal/statusbar"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	background = color.NRGBA{R: 0x2a, G: 0x2f, B: 0x38, A: 0xff}
	checkLight = color.NRGBA{R: 0x3a, G: 0x3f, B: 0x48, A: 0xff}
	checkDark  = color.NRGBA{R: 0x31, G: 0x35, B: 0x3d, A: 0xff}
)

const (
	checkSize   = 8
	statusInset = 4
	maxZoom     = 64
)

// Game implements ebiten.Game around an App.
type Game struct {
	app         *app.App
	host        *Host
	surface     *Surface
	statusBar   *statusbar.StatusBar
	modeHandler *modehandler.ModeHandler
	quit        chan struct{}

	keys  []ebiten.Key
	chars []rune
	drawn bool
}

// New builds the App inside an ebiten host. opts.ViewWidth/ViewHeight
// should match the initial window size.
func New(opts app.Options) (*Game, error) {
	host := NewHost()
	a, err := app.New(opts, host)
	if err != nil {
		return nil, err
	}
	g := &Game{
		app:       a,
		host:      host,
		surface:   &Surface{},
		statusBar: statusbar.New(statusbar.DefaultConfig()),
		quit:      make(chan struct{}),
	}
	g.modeHandler = modehandler.New(modehandler.Config{
		Editor:         a.Editor(),
		Camera:         a.Camera(),
		Host:           a,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   a.Events(),
		StatusBar:      g.statusBar,
		QuitSignal:     g.quit,
	})
	a.SetStatusHandler(func(msg string) { g.statusBar.SetTemporaryMessage("%s", msg) })
	if err := a.On(event.KindDraw, g.drawFrame); err != nil {
		a.Close()
		return nil, err
	}
	return g, nil
}

// App returns the hosted App.
func (g *Game) App() *app.App { return g.app }

// Close releases the App.
func (g *Game) Close() { g.app.Close() }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	select {
	case <-g.quit:
		return ebiten.Termination
	default:
	}
	g.host.RunTimers()

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	var actions []input.ActionEvent
	if g.modeHandler.GetCurrentMode() == modehandler.ModeCommand {
		actions = decodeCommand(g.keys, g.chars)
	} else {
		shift := ebiten.IsKeyPressed(ebiten.KeyShift)
		ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
		actions = decodeNormal(g.keys, g.chars, shift, ctrl)
	}
	for _, a := range actions {
		g.modeHandler.HandleAction(a)
	}

	g.handleMouse()
	return nil
}

func (g *Game) handleMouse() {
	cam := g.app.Camera()
	if _, dy := ebiten.Wheel(); dy != 0 {
		z := cam.Zoom() + math.Copysign(1, dy)
		g.app.Zoom(math.Max(1, math.Min(maxZoom, z)))
	}

	mx, my := ebiten.CursorPosition()
	tx, ty := cam.Cell(mx, my)
	w, h := g.app.Editor().CanvasSize()
	if tx < 0 || ty < 0 || tx >= w || ty >= h {
		g.modeHandler.HandlePointer(image.Point{}, false)
		return
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		g.app.Editor().SetBrush(tx, ty)
		g.app.Editor().PickColor()
		return
	}
	g.modeHandler.HandlePointer(image.Pt(tx, ty), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// Draw implements ebiten.Game. Queued frames draw here; when none was
// queued the App redraws directly, since ebiten clears the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Begin(screen)
	defer g.surface.End()
	g.drawn = false
	g.host.RunFrames()
	if !g.drawn {
		g.app.Redraw()
	}
}

// drawFrame is the App's draw handler.
func (g *Game) drawFrame() {
	screen := g.surface.img
	if screen == nil {
		return
	}
	g.drawn = true
	screen.Fill(background)
	g.drawChecker(screen)
	g.app.Draw(g.surface)
	g.drawBrush(screen)

	ed := g.app.Editor()
	hist := g.app.History()
	g.statusBar.SetBrush(ed.GetBrush(), ed.Color())
	g.statusBar.SetHistory(hist.Index(), hist.Len(), hist.InStroke())
	g.statusBar.SetView(g.app.Camera().Zoom(), g.app.Frames())
	g.statusBar.SetEditorMode(g.modeHandler.GetCurrentMode().String())
	if g.modeHandler.GetCurrentMode() == modehandler.ModeCommand {
		g.statusBar.SetTemporaryMessage(":%s", g.modeHandler.GetCommandBuffer())
	}
	text, _ := g.statusBar.Text()
	ebitenutil.DebugPrintAt(screen, text, statusInset, screen.Bounds().Dy()-16-statusInset)
}

func (g *Game) canvasRect() image.Rectangle {
	cam := g.app.Camera()
	w, h := g.app.Editor().CanvasSize()
	x0, y0 := cam.TileToScreen(0, 0)
	x1, y1 := cam.TileToScreen(float64(w), float64(h))
	return image.Rect(int(x0), int(y0), int(math.Ceil(x1)), int(math.Ceil(y1)))
}

func (g *Game) drawChecker(screen *ebiten.Image) {
	r := g.canvasRect().Intersect(screen.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y += checkSize {
		for x := r.Min.X; x < r.Max.X; x += checkSize {
			c := checkLight
			if ((x-r.Min.X)/checkSize+(y-r.Min.Y)/checkSize)%2 == 1 {
				c = checkDark
			}
			cell := image.Rect(x, y, min(x+checkSize, r.Max.X), min(y+checkSize, r.Max.Y))
			g.surface.FillRect(cell, c)
		}
	}
}

func (g *Game) drawBrush(screen *ebiten.Image) {
	cam := g.app.Camera()
	b := g.app.Editor().GetBrush()
	x, y := cam.TileToScreen(float64(b.X), float64(b.Y))
	z := cam.Zoom()
	if img, ok := g.app.Cursors().ActiveImage(); ok {
		g.surface.DrawImage(img, image.Pt(int(x), int(y)))
		return
	}
	outline := color.NRGBA{R: 0xe5, G: 0xc0, B: 0x7b, A: 0xff}
	r := image.Rect(int(x), int(y), int(x+z), int(y+z))
	for _, edge := range []image.Rectangle{
		{Min: r.Min, Max: image.Pt(r.Max.X, r.Min.Y+1)},
		{Min: image.Pt(r.Min.X, r.Max.Y-1), Max: r.Max},
		{Min: r.Min, Max: image.Pt(r.Min.X+1, r.Max.Y)},
		{Min: image.Pt(r.Max.X-1, r.Min.Y), Max: r.Max},
	} {
		g.surface.FillRect(edge, outline)
	}
}

// Layout implements ebiten.Game. The canvas is drawn at device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.app.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens a window and blocks until it closes.
func Run(opts app.Options, title string) error {
	g, err := New(opts)
	if err != nil {
		return err
	}
	defer g.Close()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(opts.ViewWidth, opts.ViewHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	logger.Infof("Ebiten host: window %dx%d", opts.ViewWidth, opts.ViewHeight)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return nil
}
