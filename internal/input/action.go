// internal/input/action.go
package input

// Action represents an operation requested by the user.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit

	// --- Brush Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight

	// --- Drawing ---
	ActionPaint
	ActionErase
	ActionPickColor
	ActionToggleStroke
	ActionFillBackground
	ActionNextColor
	ActionPrevColor

	// --- History ---
	ActionUndo
	ActionRedo
	ActionFlatten
	ActionClear

	// --- View ---
	ActionZoomIn
	ActionZoomOut
	ActionZoomFit
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight

	// --- Export ---
	ActionExport
	ActionCopyImage

	// --- Command Mode ---
	ActionEnterCommandMode
	ActionInsertRune // carries Rune
	ActionInsertNewLine
	ActionDeleteCharBackward
)

var actionNames = map[Action]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionForceQuit:          "force-quit",
	ActionMoveUp:             "move-up",
	ActionMoveDown:           "move-down",
	ActionMoveLeft:           "move-left",
	ActionMoveRight:          "move-right",
	ActionPaint:              "paint",
	ActionErase:              "erase",
	ActionPickColor:          "pick",
	ActionToggleStroke:       "stroke",
	ActionFillBackground:     "background",
	ActionNextColor:          "next-color",
	ActionPrevColor:          "prev-color",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionFlatten:            "flatten",
	ActionClear:              "clear",
	ActionZoomIn:             "zoom-in",
	ActionZoomOut:            "zoom-out",
	ActionZoomFit:            "zoom-fit",
	ActionPanUp:              "pan-up",
	ActionPanDown:            "pan-down",
	ActionPanLeft:            "pan-left",
	ActionPanRight:           "pan-right",
	ActionExport:             "export",
	ActionCopyImage:          "copy",
	ActionEnterCommandMode:   "command",
	ActionInsertRune:         "insert-rune",
	ActionInsertNewLine:      "enter",
	ActionDeleteCharBackward: "backspace",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent is a decoded input event.
type ActionEvent struct {
	Action Action
	Rune   rune // for ActionInsertRune
}
