package ebitenhost

import (
	"github.com/bethropolis/poxi/internal/input"
	"github.com/hajimehoshi/ebiten/v2"
)

// keyBinding maps a key, with or without a modifier, to an action.
type keyBinding struct {
	key   ebiten.Key
	shift bool
	ctrl  bool
}

// normalKeys mirrors the terminal bindings.
var normalKeys = map[keyBinding]input.Action{
	{key: ebiten.KeyArrowUp}:                 input.ActionMoveUp,
	{key: ebiten.KeyArrowDown}:               input.ActionMoveDown,
	{key: ebiten.KeyArrowLeft}:               input.ActionMoveLeft,
	{key: ebiten.KeyArrowRight}:              input.ActionMoveRight,
	{key: ebiten.KeyArrowUp, shift: true}:    input.ActionPanUp,
	{key: ebiten.KeyArrowDown, shift: true}:  input.ActionPanDown,
	{key: ebiten.KeyArrowLeft, shift: true}:  input.ActionPanLeft,
	{key: ebiten.KeyArrowRight, shift: true}: input.ActionPanRight,
	{key: ebiten.KeySpace}:                   input.ActionPaint,
	{key: ebiten.KeyX}:                       input.ActionErase,
	{key: ebiten.KeyI}:                       input.ActionPickColor,
	{key: ebiten.KeyS}:                       input.ActionToggleStroke,
	{key: ebiten.KeyB}:                       input.ActionFillBackground,
	{key: ebiten.KeyBracketRight}:            input.ActionNextColor,
	{key: ebiten.KeyBracketLeft}:             input.ActionPrevColor,
	{key: ebiten.KeyU}:                       input.ActionUndo,
	{key: ebiten.KeyZ, ctrl: true}:           input.ActionUndo,
	{key: ebiten.KeyR}:                       input.ActionRedo,
	{key: ebiten.KeyY, ctrl: true}:           input.ActionRedo,
	{key: ebiten.KeyF}:                       input.ActionFlatten,
	{key: ebiten.KeyC, shift: true}:          input.ActionClear,
	{key: ebiten.KeyEqual}:                   input.ActionZoomIn,
	{key: ebiten.KeyMinus}:                   input.ActionZoomOut,
	{key: ebiten.KeyDigit0}:                  input.ActionZoomFit,
	{key: ebiten.KeyE}:                       input.ActionExport,
	{key: ebiten.KeyY}:                       input.ActionCopyImage,
	{key: ebiten.KeyEscape}:                  input.ActionQuit,
	{key: ebiten.KeyQ}:                       input.ActionQuit,
	{key: ebiten.KeyQ, ctrl: true}:           input.ActionForceQuit,
}

// commandKeys are the keys that act in command mode; everything else
// arrives as typed characters.
var commandKeys = map[ebiten.Key]input.Action{
	ebiten.KeyEnter:     input.ActionInsertNewLine,
	ebiten.KeyBackspace: input.ActionDeleteCharBackward,
	ebiten.KeyEscape:    input.ActionQuit,
}

// decodeNormal maps the keys pressed this tick to actions. A ':' among the
// typed characters enters command mode.
func decodeNormal(pressed []ebiten.Key, chars []rune, shift, ctrl bool) []input.ActionEvent {
	var out []input.ActionEvent
	for _, r := range chars {
		if r == ':' {
			out = append(out, input.ActionEvent{Action: input.ActionEnterCommandMode, Rune: r})
		}
	}
	for _, k := range pressed {
		if a, ok := normalKeys[keyBinding{key: k, shift: shift, ctrl: ctrl}]; ok {
			out = append(out, input.ActionEvent{Action: a})
		}
	}
	return out
}

// decodeCommand maps typed characters and editing keys in command mode.
func decodeCommand(pressed []ebiten.Key, chars []rune) []input.ActionEvent {
	out := make([]input.ActionEvent, 0, len(chars)+len(pressed))
	for _, r := range chars {
		out = append(out, input.ActionEvent{Action: input.ActionInsertRune, Rune: r})
	}
	for _, k := range pressed {
		if a, ok := commandKeys[k]; ok {
			out = append(out, input.ActionEvent{Action: a})
		}
	}
	return out
}
