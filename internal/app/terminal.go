// internal/app/terminal.go
package app

import (
	"image"
	"image/color"
	"math"

	"github.com/bethropolis/poxi/internal/config"
	"github.com/bethropolis/poxi/internal/event"
	"github.com/bethropolis/poxi/internal/input"
	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/modehandler"
	"github.com/bethropolis/poxi/internal/scheduler"
	"github.com/bethropolis/poxi/internal/statusbar"
	"github.com/bethropolis/poxi/internal/surface"
	"github.com/bethropolis/poxi/internal/theme"
	"github.com/bethropolis/poxi/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Terminal runs an App on a tcell screen. Every tcell row shows two pixel
// rows, so the App's output surface is width x 2*(height-1) pixels.
type Terminal struct {
	tui         *tui.TUI
	host        *scheduler.TickerHost
	app         *App
	statusBar   *statusbar.StatusBar
	modeHandler *modehandler.ModeHandler
	quit        chan struct{}
	frame       *surface.Raster
	themeName   string
}

// NewTerminal opens the terminal and builds the App from cfg.
func NewTerminal(cfg *config.Config) (*Terminal, error) {
	t, err := tui.New(tcell.StyleDefault)
	if err != nil {
		return nil, err
	}
	term, err := newTerminal(cfg, t, scheduler.NewTickerHost(cfg.Editor.FPS))
	if err != nil {
		t.Close()
		return nil, err
	}
	return term, nil
}

func newTerminal(cfg *config.Config, t *tui.TUI, host *scheduler.TickerHost) (*Terminal, error) {
	pw, ph := t.PixelSize(config.StatusBarHeight)
	a, err := New(OptionsFromConfig(cfg, pw, ph), host)
	if err != nil {
		return nil, err
	}

	quit := make(chan struct{})
	term := &Terminal{
		tui:       t,
		host:      host,
		app:       a,
		statusBar: statusbar.New(statusbar.DefaultConfig()),
		quit:      quit,
	}
	term.applyTheme()
	t.GetScreen().SetStyle(a.Themes().Current().GetStyle(theme.StyleDefault))

	term.modeHandler = modehandler.New(modehandler.Config{
		Editor:         a.Editor(),
		Camera:         a.Camera(),
		Host:           a,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   a.Events(),
		StatusBar:      term.statusBar,
		QuitSignal:     quit,
	})

	a.SetStatusHandler(func(msg string) { term.statusBar.SetTemporaryMessage("%s", msg) })
	a.Events().Subscribe(event.TypeCursorLoaded, func(e event.Event) bool {
		if d, ok := e.Data.(event.CursorLoadedData); ok && d.Err == nil {
			logger.DebugTagf("terminal", "Terminal: cursor '%s' ready", d.Kind)
		}
		return false
	})
	if err := a.On(event.KindDraw, term.draw); err != nil {
		a.Close()
		return nil, err
	}
	return term, nil
}

// App returns the running App.
func (t *Terminal) App() *App { return t.app }

// Run processes terminal input and host callbacks until the user quits.
func (t *Terminal) Run() error {
	defer t.tui.Close()
	defer t.app.Close()
	defer t.host.Stop()

	t.host.Start()
	events := make(chan tcell.Event, 16)
	go t.pollEvents(events)

	t.statusBar.SetTemporaryMessage("Poxi - Space paints | : commands | q quits")

	for {
		select {
		case <-t.quit:
			if t.app.Modified() {
				logger.Warnf("Terminal: exited with unexported changes")
			}
			logger.Infof("Exiting application.")
			return nil
		case fn := <-t.host.C():
			fn()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			t.handleEvent(ev)
		}
	}
}

// pollEvents forwards tcell events to the main loop until the screen is
// finalized or the user quits.
func (t *Terminal) pollEvents(out chan<- tcell.Event) {
	defer close(out)
	for {
		ev := t.tui.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-t.quit:
			return
		}
	}
}

func (t *Terminal) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.tui.Sync()
		t.app.Resize(t.tui.PixelSize(config.StatusBarHeight))
	case *tcell.EventKey:
		t.modeHandler.HandleKeyEvent(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	}
}

// handleMouse maps a cell to the tile under its upper pixel.
func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	cam := t.app.Camera()

	switch {
	case buttons&tcell.WheelUp != 0:
		t.app.Zoom(math.Min(cam.Zoom()+1, 64))
		return
	case buttons&tcell.WheelDown != 0:
		t.app.Zoom(math.Max(cam.Zoom()-1, 1))
		return
	}

	_, rows := t.tui.Size()
	if y >= rows-config.StatusBarHeight {
		t.modeHandler.HandlePointer(image.Point{}, false)
		return
	}
	tx, ty := cam.Cell(x, y*2)
	w, h := t.app.Editor().CanvasSize()
	if tx < 0 || ty < 0 || tx >= w || ty >= h {
		t.modeHandler.HandlePointer(image.Point{}, false)
		return
	}
	t.modeHandler.HandlePointer(image.Pt(tx, ty), buttons&tcell.Button1 != 0)
}

// applyTheme restyles the status bar when the theme changed.
func (t *Terminal) applyTheme() {
	th := t.app.Themes().Current()
	if th.Name == t.themeName {
		return
	}
	t.themeName = th.Name
	t.statusBar.SetConfig(statusbar.Config{
		StyleDefault:   th.GetStyle(theme.StyleStatusBar),
		StyleStroke:    th.GetStyle(theme.StyleStatusBarStroke),
		StyleMessage:   th.GetStyle(theme.StyleStatusBarMessage),
		StyleCommand:   th.GetStyle(theme.StyleStatusBarCommand),
		MessageTimeout: config.MessageTimeout,
	})
}

// draw is the App's draw handler: composite the canvas, present it as
// half blocks, then the brush and the status line.
func (t *Terminal) draw() {
	t.applyTheme()
	th := t.app.Themes().Current()
	width, height := t.tui.Size()
	rows := max(height-config.StatusBarHeight, 0)
	pw, ph := width, rows*2

	if t.frame == nil || t.frame.Bounds().Dx() != pw || t.frame.Bounds().Dy() != ph {
		t.frame = surface.NewRaster(pw, ph)
	}
	// Outside the canvas shows the theme background; inside stays
	// transparent so the checker shows through.
	t.frame.FillRect(t.frame.Bounds(), tui.BackgroundOf(th.GetStyle(theme.StyleDefault)))
	t.frame.FillRect(t.canvasRect(), color.Transparent)

	t.app.Draw(t.frame)
	checker := tui.CheckerFromStyles(th.GetStyle(theme.StyleCheckerLight), th.GetStyle(theme.StyleCheckerDark))
	t.tui.Present(t.frame.Image(), rows, checker)
	t.tui.Mark(t.brushRect(), rows, th.GetStyle(theme.StyleBrush))

	t.updateStatusBar()
	t.statusBar.Draw(t.tui.GetScreen(), width, height)
	t.tui.Show()
}

// canvasRect is the canvas in screen pixels.
func (t *Terminal) canvasRect() image.Rectangle {
	w, h := t.app.Editor().CanvasSize()
	return t.tileRect(image.Rect(0, 0, w, h))
}

func (t *Terminal) brushRect() image.Rectangle {
	b := t.app.Editor().GetBrush()
	return t.tileRect(image.Rect(b.X, b.Y, b.X+1, b.Y+1))
}

func (t *Terminal) tileRect(r image.Rectangle) image.Rectangle {
	cam := t.app.Camera()
	x0, y0 := cam.TileToScreen(float64(r.Min.X), float64(r.Min.Y))
	x1, y1 := cam.TileToScreen(float64(r.Max.X), float64(r.Max.Y))
	return image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1)))
}

// updateStatusBar pushes the current editor state to the status bar.
func (t *Terminal) updateStatusBar() {
	ed := t.app.Editor()
	h := t.app.History()
	t.statusBar.SetBrush(ed.GetBrush(), ed.Color())
	t.statusBar.SetHistory(h.Index(), h.Len(), h.InStroke())
	t.statusBar.SetView(t.app.Camera().Zoom(), t.app.Frames())
	t.statusBar.SetEditorMode(t.modeHandler.GetCurrentMode().String())

	if t.modeHandler.GetCurrentMode() == modehandler.ModeCommand {
		t.statusBar.SetTemporaryMessage(":%s", t.modeHandler.GetCommandBuffer())
	}
}
