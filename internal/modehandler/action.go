package modehandler

import (
	"math"

	"github.com/bethropolis/poxi/internal/input"
	"github.com/bethropolis/poxi/internal/logger"
)

const (
	minZoom      = 1
	maxZoom      = 64
	zoomDuration = 0.15 // seconds
	panStep      = 4    // screen pixels
)

// executeAction handles actions in ModeNormal.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	processed := true

	switch actionEvent.Action {
	case input.ActionEnterCommandMode:
		if mh.editor.InStroke() {
			mh.editor.EndStroke()
		}
		mh.currentMode = ModeCommand
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.SetTemporaryMessage(":")
		logger.DebugTagf("mode", "entering command mode")

	case input.ActionQuit:
		if mh.host.Modified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Canvas not exported! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			processed = false
		} else {
			mh.quit()
			processed = false
		}
	case input.ActionForceQuit:
		mh.quit()
		processed = false

	// --- Brush ---
	case input.ActionMoveUp:
		mh.editor.MoveBrush(0, -1)
	case input.ActionMoveDown:
		mh.editor.MoveBrush(0, 1)
	case input.ActionMoveLeft:
		mh.editor.MoveBrush(-1, 0)
	case input.ActionMoveRight:
		mh.editor.MoveBrush(1, 0)

	// --- Drawing ---
	case input.ActionPaint:
		mh.editor.Paint()
	case input.ActionErase:
		mh.editor.Erase()
	case input.ActionPickColor:
		if !mh.editor.PickColor() {
			mh.statusBar.SetTemporaryMessage("Nothing to pick here")
		}
	case input.ActionToggleStroke:
		if mh.editor.ToggleStroke() {
			mh.statusBar.SetTemporaryMessage("Stroke started")
		} else {
			mh.statusBar.SetTemporaryMessage("Stroke ended")
		}
	case input.ActionFillBackground:
		mh.editor.FillBackground()
	case input.ActionNextColor:
		mh.editor.NextColor()
	case input.ActionPrevColor:
		mh.editor.PrevColor()

	// --- History ---
	case input.ActionUndo:
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Already at oldest change")
		}
	case input.ActionRedo:
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Already at newest change")
		}
	case input.ActionFlatten:
		if mh.editor.Flatten() {
			mh.statusBar.SetTemporaryMessage("History flattened")
		}
	case input.ActionClear:
		mh.editor.Clear()
		mh.statusBar.SetTemporaryMessage("Canvas cleared")

	// --- View ---
	case input.ActionZoomIn:
		mh.zoomBy(2)
	case input.ActionZoomOut:
		mh.zoomBy(0.5)
	case input.ActionZoomFit:
		mh.camera.Scale(0)
	case input.ActionPanUp:
		mh.camera.Pan(0, panStep)
	case input.ActionPanDown:
		mh.camera.Pan(0, -panStep)
	case input.ActionPanLeft:
		mh.camera.Pan(panStep, 0)
	case input.ActionPanRight:
		mh.camera.Pan(-panStep, 0)

	// --- Output ---
	case input.ActionExport:
		path, err := mh.host.ExportFile("")
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Export FAILED: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Exported to %s", path)
		}
	case input.ActionCopyImage:
		if err := mh.host.CopyImage(); err != nil {
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Image copied as data URL")
		}

	default:
		processed = false
	}

	if processed && actionEvent.Action != input.ActionQuit {
		mh.forceQuitPending = false
	}
	return processed
}

// zoomBy multiplies the zoom, clamped to whole levels.
func (mh *ModeHandler) zoomBy(factor float64) {
	z := math.Round(mh.camera.Zoom() * factor)
	z = math.Max(minZoom, math.Min(maxZoom, z))
	mh.camera.ZoomTo(z, zoomDuration)
}
