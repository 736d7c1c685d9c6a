// internal/modehandler/modehandler.go
package modehandler

import (
	"image"

	"github.com/bethropolis/poxi/internal/camera"
	"github.com/bethropolis/poxi/internal/core"
	"github.com/bethropolis/poxi/internal/event"
	"github.com/bethropolis/poxi/internal/input"
	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "NORMAL"
}

// Host is what the handler needs from the application beyond the editor.
type Host interface {
	// ExportFile writes a PNG into the export directory and returns its path.
	ExportFile(name string) (string, error)
	CopyImage() error
	// Modified reports whether the canvas changed since the last export.
	Modified() bool
	ExecuteCommand(line string) error
}

// ModeHandler manages input modes and command execution.
type ModeHandler struct {
	editor         *core.Editor
	camera         *camera.Camera
	host           Host
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}

	currentMode      InputMode
	cmdBuffer        []rune
	forceQuitPending bool
	quitting         bool

	dragging   bool
	dragStroke bool // the drag opened the stroke and closes it on release
	lastDrag   image.Point
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	Camera         *camera.Camera
	Host           Host
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{}
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.Camera == nil || cfg.Host == nil || cfg.InputProcessor == nil ||
		cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		camera:         cfg.Camera,
		host:           cfg.Host,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
	}
}

// HandleKeyEvent runs the action bound to ev in the current mode.
// Returns true if the screen needs a redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	return mh.HandleAction(mh.inputProcessor.ProcessEvent(ev))
}

// HandleAction runs an already decoded action in the current mode. Hosts
// without tcell key events decode their own input into actions.
func (mh *ModeHandler) HandleAction(actionEvent input.ActionEvent) bool {
	var processed bool
	switch mh.currentMode {
	case ModeNormal:
		processed = mh.executeAction(actionEvent)
	case ModeCommand:
		processed = mh.handleActionCommand(actionEvent)
	default:
		logger.Warnf("ModeHandler: unknown input mode %v", mh.currentMode)
	}
	mh.statusBar.SetEditorMode(mh.currentMode.String())

	return processed || (actionEvent.Action == input.ActionQuit && mh.forceQuitPending)
}

// HandlePointer paints at tile p while the primary button is held; a drag
// connects successive positions with a line and is recorded as one stroke.
// Pointer input is ignored in command mode.
func (mh *ModeHandler) HandlePointer(p image.Point, pressed bool) bool {
	if !pressed {
		mh.endDrag()
		return false
	}
	if mh.currentMode != ModeNormal {
		return false
	}
	if mh.dragging {
		if p == mh.lastDrag {
			return false
		}
		mh.editor.PaintLine(mh.lastDrag, p)
	} else {
		if !mh.editor.History().InStroke() {
			mh.editor.BeginStroke()
			mh.dragStroke = true
		}
		mh.editor.PaintAt(p.X, p.Y)
	}
	mh.editor.SetBrush(p.X, p.Y)
	mh.dragging = true
	mh.lastDrag = p
	return true
}

func (mh *ModeHandler) endDrag() {
	mh.dragging = false
	if mh.dragStroke {
		mh.dragStroke = false
		mh.editor.EndStroke()
	}
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the pending command line in command mode.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

func (mh *ModeHandler) quit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}
