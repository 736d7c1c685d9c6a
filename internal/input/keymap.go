// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps plain runes to actions.
type RuneKeymap map[rune]Action

// ModKeymap maps modifier combinations to their own key maps.
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlY] = ActionRedo
	p.keymap[tcell.KeyCtrlQ] = ActionForceQuit

	// --- Shift + arrows pan the view ---
	shiftMap := make(Keymap)
	shiftMap[tcell.KeyUp] = ActionPanUp
	shiftMap[tcell.KeyDown] = ActionPanDown
	shiftMap[tcell.KeyLeft] = ActionPanLeft
	shiftMap[tcell.KeyRight] = ActionPanRight
	p.modKeymap[tcell.ModShift] = shiftMap

	// --- Runes ---
	p.runeKeymap[' '] = ActionPaint
	p.runeKeymap['x'] = ActionErase
	p.runeKeymap['i'] = ActionPickColor
	p.runeKeymap['s'] = ActionToggleStroke
	p.runeKeymap['b'] = ActionFillBackground
	p.runeKeymap[']'] = ActionNextColor
	p.runeKeymap['['] = ActionPrevColor
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['r'] = ActionRedo
	p.runeKeymap['f'] = ActionFlatten
	p.runeKeymap['C'] = ActionClear
	p.runeKeymap['+'] = ActionZoomIn
	p.runeKeymap['='] = ActionZoomIn
	p.runeKeymap['-'] = ActionZoomOut
	p.runeKeymap['0'] = ActionZoomFit
	p.runeKeymap['h'] = ActionMoveLeft
	p.runeKeymap['j'] = ActionMoveDown
	p.runeKeymap['k'] = ActionMoveUp
	p.runeKeymap['l'] = ActionMoveRight
	p.runeKeymap['e'] = ActionExport
	p.runeKeymap['y'] = ActionCopyImage
	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap[':'] = ActionEnterCommandMode
}

// Bind maps a rune to an action, replacing any existing binding.
func (p *InputProcessor) Bind(r rune, a Action) {
	p.runeKeymap[r] = a
}

// ProcessEvent maps a key event to an action. Runes without a binding come
// back as ActionInsertRune; the caller decides what they mean in its mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	// 1. Modifier + key
	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}
	// Ctrl+letter keys already encode Ctrl.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	// 2. Special keys
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 3. Runes; shifted runes such as '+' or 'C' arrive with ModShift.
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	return ActionEvent{Action: ActionUnknown}
}
