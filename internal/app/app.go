// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/bethropolis/poxi/internal/camera"
	"github.com/bethropolis/poxi/internal/clipboard"
	"github.com/bethropolis/poxi/internal/commands"
	"github.com/bethropolis/poxi/internal/config"
	"github.com/bethropolis/poxi/internal/core"
	"github.com/bethropolis/poxi/internal/core/history"
	"github.com/bethropolis/poxi/internal/cursor"
	"github.com/bethropolis/poxi/internal/event"
	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/palette"
	"github.com/bethropolis/poxi/internal/plugin"
	"github.com/bethropolis/poxi/internal/render"
	"github.com/bethropolis/poxi/internal/scheduler"
	"github.com/bethropolis/poxi/internal/surface"
	"github.com/bethropolis/poxi/internal/theme"
)

// ErrNoHost is returned by New when no host drives the frame loop.
var ErrNoHost = errors.New("app: must run inside a graphical host")

// zoomSeconds is the length of animated zoom changes.
const zoomSeconds = 0.15

// Options configures a new App.
type Options struct {
	Width, Height         int // canvas, in tiles
	ViewWidth, ViewHeight int // output surface, in pixels

	FlattenThreshold int
	ExportCacheBytes int64
	ExportDir        string
	IdleInterval     time.Duration

	Colors      []string // explicit palette; overrides PaletteName
	PaletteName string
	PaletteDir  string
	Theme       string
	ThemeDir    string

	SystemClipboard bool
	Clipboard       clipboard.Backend // overrides SystemClipboard when set

	// Plugins run at start-up. nil registers the built-in set.
	Plugins []plugin.Plugin
	// PluginValue looks up [plugins.<name>] settings. May be nil.
	PluginValue func(plugin, key string) (interface{}, bool)
}

// OptionsFromConfig maps the loaded configuration onto Options.
func OptionsFromConfig(cfg *config.Config, viewW, viewH int) Options {
	return Options{
		Width:            cfg.Editor.Width,
		Height:           cfg.Editor.Height,
		ViewWidth:        viewW,
		ViewHeight:       viewH,
		FlattenThreshold: cfg.Editor.FlattenThreshold,
		ExportCacheBytes: config.ExportCacheBytes,
		ExportDir:        cfg.Editor.ExportDir,
		IdleInterval:     config.IdleInterval,
		Colors:           cfg.Editor.Palette,
		PaletteName:      cfg.Editor.PaletteName,
		PaletteDir:       cfg.Editor.PaletteDir,
		Theme:            cfg.Editor.Theme,
		ThemeDir:         cfg.Editor.ThemeDir,
		SystemClipboard:  cfg.Editor.SystemClipboard,
		PluginValue:      cfg.PluginValue,
	}
}

func (o *Options) applyDefaults() {
	if o.Width <= 0 {
		o.Width = config.DefaultCanvasWidth
	}
	if o.Height <= 0 {
		o.Height = config.DefaultCanvasHeight
	}
	if o.ViewWidth < 0 {
		o.ViewWidth = 0
	}
	if o.ViewHeight < 0 {
		o.ViewHeight = 0
	}
	if o.ExportDir == "" {
		o.ExportDir = config.DefaultExportDir
	}
	if o.IdleInterval <= 0 {
		o.IdleInterval = config.IdleInterval
	}
	if o.PaletteName == "" {
		o.PaletteName = config.DefaultPaletteName
	}
}

// App is one editor instance: history, camera, frame loop, emitter and the
// export path. It holds no global state and is driven entirely by its host.
type App struct {
	opts Options
	host scheduler.Host

	history    *history.Manager
	editor     *core.Editor
	camera     *camera.Camera
	compositor *render.Compositor
	renderer   *render.LiveRenderer
	exporter   *render.Exporter

	emitter      *event.Emitter
	eventManager *event.Manager
	scheduler    *scheduler.Scheduler
	cursors      *cursor.Registry

	palettes  *palette.Manager
	themes    *theme.Manager
	clipboard *clipboard.Manager
	commands  *commands.Registry
	plugins   *plugin.Manager
	api       *editorAPI

	statusHandler func(msg string)
	exportedRev   uint64
	lastDraw      time.Time
	now           func() time.Time
	closed        bool
}

// New builds an App. The host delivers frame and timer callbacks; without
// one New fails with ErrNoHost.
func New(opts Options, host scheduler.Host) (*App, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	opts.applyDefaults()

	a := &App{
		opts:         opts,
		host:         host,
		eventManager: event.NewManager(),
		emitter:      event.NewEmitter(),
		commands:     commands.NewRegistry(),
		plugins:      plugin.NewManager(),
		now:          time.Now,
	}

	a.compositor = render.NewCompositor()
	a.history = history.NewManager(a.compositor)
	a.history.SetFlattenThreshold(opts.FlattenThreshold)

	exporter, err := render.NewExporter(a.compositor, opts.ExportCacheBytes)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.exporter = exporter
	a.renderer = render.NewLiveRenderer(a.compositor)

	a.palettes = palette.NewManager(opts.PaletteDir)
	if len(opts.Colors) > 0 {
		pal, errs := palette.Parse("config", opts.Colors)
		for _, e := range errs {
			logger.Warnf("Palette: %v", e)
		}
		a.palettes.Add(pal)
		opts.PaletteName = pal.Name
	}
	if err := a.palettes.SetActive(opts.PaletteName); err != nil {
		logger.Warnf("Palette: %v, keeping %s", err, a.palettes.Current().Name)
	}

	a.themes = theme.NewManager(opts.ThemeDir)
	if opts.Theme != "" {
		if err := a.themes.SetTheme(opts.Theme); err != nil {
			logger.Warnf("Theme: %v", err)
		}
	}

	if opts.Clipboard != nil {
		a.clipboard = clipboard.NewManagerWithBackend(opts.Clipboard)
	} else {
		a.clipboard = clipboard.NewManager(opts.SystemClipboard)
	}

	a.editor = core.NewEditor(a.history, a.palettes.Current())
	a.editor.SetEventManager(a.eventManager)
	a.editor.SetCanvasSize(opts.Width, opts.Height)
	a.exportedRev = a.history.Revision()

	a.camera = camera.New(opts.ViewWidth, opts.ViewHeight, opts.Width, opts.Height)

	a.scheduler = scheduler.New(host, opts.IdleInterval, func() bool {
		return a.emitter.Emit(event.KindDraw)
	})
	a.emitter.OnRegister(func(kind event.Kind) {
		if kind == event.KindDraw && a.scheduler.Frames() == 0 {
			a.scheduler.Gate()
		}
	})

	a.cursors = cursor.NewRegistry(func(kind string, err error) {
		// Loads finish on their own goroutine; hand the result to the loop.
		a.host.After(0, func() {
			a.eventManager.Dispatch(event.TypeCursorLoaded, event.CursorLoadedData{Kind: kind, Err: err})
		})
	})

	a.subscribeHandlers()
	a.api = newEditorAPI(a)
	commands.RegisterAppCommands(a.api)
	if err := a.startPlugins(); err != nil {
		logger.Warnf("App: %v", err)
	}

	a.init()
	return a, nil
}

// init fits the canvas, starts the frame loop and draws once.
func (a *App) init() {
	a.camera.Scale(0)
	a.scheduler.Start()
	a.scheduler.Redraw()
	w, h := a.editor.CanvasSize()
	logger.Infof("App: ready, canvas %dx%d, view %dx%d", w, h, a.opts.ViewWidth, a.opts.ViewHeight)
	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
}

// On registers the handler for kind, replacing any previous one. Registering
// the first draw handler before any frame has run starts the frame loop.
func (a *App) On(kind event.Kind, fn func()) error {
	return a.emitter.On(kind, fn)
}

// OnNamed is On keyed by the kind's name ("draw", "history", ...).
func (a *App) OnNamed(name string, fn func()) error {
	return a.emitter.OnNamed(name, fn)
}

// Redraw runs the draw handler synchronously, if one is registered.
func (a *App) Redraw() bool {
	return a.scheduler.Redraw()
}

// Frames returns the number of frames drawn so far.
func (a *App) Frames() uint64 {
	return a.scheduler.Frames()
}

// State returns the frame loop state.
func (a *App) State() scheduler.State {
	return a.scheduler.State()
}

// Resize changes the output surface size. The history is untouched and
// repeating the same size is a no-op.
func (a *App) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if cw, ch := a.camera.Viewport(); cw == w && ch == h {
		return
	}
	a.camera.SetViewport(w, h)
	a.opts.ViewWidth, a.opts.ViewHeight = w, h
	a.renderer.Invalidate()
	logger.DebugTagf("app", "App: view resized to %dx%d", w, h)
	a.eventManager.Dispatch(event.TypeResized, event.ResizedData{Width: w, Height: h})
	a.emitter.Emit(event.KindResize)
}

// ResizeCanvas changes the canvas size in tiles and refits the view. Tiles
// outside the new canvas are kept in the history.
func (a *App) ResizeCanvas(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", w, h)
	}
	a.editor.SetCanvasSize(w, h)
	a.camera.SetCanvas(w, h)
	a.camera.Scale(0)
	a.renderer.Invalidate()
	logger.Infof("App: canvas resized to %dx%d", w, h)
	return nil
}

// Zoom sets the camera zoom. Level 0 fits the canvas; other levels animate.
func (a *App) Zoom(level float64) {
	if level <= 0 {
		a.camera.Scale(0)
		return
	}
	a.camera.ZoomTo(level, zoomSeconds)
}

// Draw composites the active history through the camera onto dst. Camera
// animations advance by the wall time since the previous Draw.
func (a *App) Draw(dst surface.Surface) {
	now := a.now()
	if !a.lastDraw.IsZero() {
		a.camera.Update(float32(now.Sub(a.lastDraw).Seconds()))
	}
	a.lastDraw = now
	a.renderer.Draw(dst, a.history, a.camera)
}

// AddCursor reserves kind and loads its image in the background.
func (a *App) AddCursor(kind, path string) {
	a.cursors.Load(kind, path)
}

// SetActiveCursor selects a reserved cursor kind; unknown kinds select none.
func (a *App) SetActiveCursor(kind string) {
	a.cursors.SetActive(kind)
}

// Cursors returns the cursor registry.
func (a *App) Cursors() *cursor.Registry { return a.cursors }

// Editor returns the editing facade.
func (a *App) Editor() *core.Editor { return a.editor }

// Camera returns the view transform.
func (a *App) Camera() *camera.Camera { return a.camera }

// History returns the batch history.
func (a *App) History() *history.Manager { return a.history }

// Events returns the notification bus.
func (a *App) Events() *event.Manager { return a.eventManager }

// Themes returns the terminal theme manager.
func (a *App) Themes() *theme.Manager { return a.themes }

// API returns the interface handed to plugins and commands.
func (a *App) API() plugin.EditorAPI { return a.api }

// SetStatusHandler routes status messages to the host's status line.
func (a *App) SetStatusHandler(fn func(msg string)) {
	a.statusHandler = fn
}

// ExecuteCommand runs a command line such as "palette pico-8".
func (a *App) ExecuteCommand(line string) error {
	return a.commands.Execute(line)
}

// Close shuts down plugins and background work. Safe to call twice.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
	a.plugins.ShutdownPlugins()
	a.cursors.Wait()
	a.exporter.Close()
	logger.Infof("App: closed after %d frames", a.scheduler.Frames())
}
