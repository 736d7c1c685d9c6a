package modehandler

import (
	"strings"

	"github.com/bethropolis/poxi/internal/input"
	"github.com/bethropolis/poxi/internal/logger"
)

// handleActionCommand handles actions in ModeCommand. Any key that carries a
// rune types it, including keys bound to normal-mode actions.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	processed := true
	needsUpdate := false

	switch {
	case actionEvent.Rune != 0:
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)
		needsUpdate = true

	case actionEvent.Action == input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) > 0 {
			mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]
			needsUpdate = true
		} else {
			mh.currentMode = ModeNormal
			mh.statusBar.ResetTemporaryMessage()
		}

	case actionEvent.Action == input.ActionInsertNewLine:
		line := string(mh.cmdBuffer)
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.currentMode = ModeNormal
		if strings.TrimSpace(line) == "" {
			mh.statusBar.ResetTemporaryMessage()
			break
		}
		if err := mh.host.ExecuteCommand(line); err != nil {
			mh.statusBar.SetTemporaryMessage("%v", err)
		}

	case actionEvent.Action == input.ActionQuit, actionEvent.Action == input.ActionForceQuit:
		mh.currentMode = ModeNormal
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.ResetTemporaryMessage()
		logger.DebugTagf("mode", "command mode cancelled")

	default:
		processed = false
	}

	if needsUpdate && mh.currentMode == ModeCommand {
		mh.statusBar.SetTemporaryMessage(":%s", string(mh.cmdBuffer))
	}
	return processed
}
