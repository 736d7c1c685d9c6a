package modehandler

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/bethropolis/poxi/internal/camera"
	"github.com/bethropolis/poxi/internal/commands"
	"github.com/bethropolis/poxi/internal/core"
	"github.com/bethropolis/poxi/internal/core/history"
	"github.com/bethropolis/poxi/internal/event"
	"github.com/bethropolis/poxi/internal/input"
	"github.com/bethropolis/poxi/internal/palette"
	"github.com/bethropolis/poxi/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

type fakeHost struct {
	modified bool
	exports  int
	copyErr  error
	registry *commands.Registry
}

func (h *fakeHost) ExportFile(name string) (string, error) {
	h.exports++
	h.modified = false
	return "exports/poxi.png", nil
}

func (h *fakeHost) CopyImage() error { return h.copyErr }
func (h *fakeHost) Modified() bool   { return h.modified }

func (h *fakeHost) ExecuteCommand(line string) error { return h.registry.Execute(line) }

type fixture struct {
	mh     *ModeHandler
	editor *core.Editor
	host   *fakeHost
	sb     *statusbar.StatusBar
	quit   chan struct{}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pal, _ := palette.Parse("test", []string{"#ff0000", "#00ff00"})
	ed := core.NewEditor(history.NewManager(nil), pal)
	ed.SetCanvasSize(8, 8)
	mgr := event.NewManager()
	ed.SetEventManager(mgr)

	f := &fixture{
		editor: ed,
		host:   &fakeHost{registry: commands.NewRegistry()},
		sb:     statusbar.New(statusbar.DefaultConfig()),
		quit:   make(chan struct{}),
	}
	f.mh = New(Config{
		Editor:         ed,
		Camera:         camera.New(32, 32, 8, 8),
		Host:           f.host,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   mgr,
		StatusBar:      f.sb,
		QuitSignal:     f.quit,
	})
	return f
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func (f *fixture) typeLine(s string) {
	for _, r := range s {
		f.mh.HandleKeyEvent(runeKey(r))
	}
}

func quitClosed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestPaintMoveUndo(t *testing.T) {
	f := newFixture(t)
	f.mh.HandleKeyEvent(runeKey(' '))
	f.mh.HandleKeyEvent(runeKey('l'))
	f.mh.HandleKeyEvent(runeKey(' '))

	h := f.editor.History()
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	if !f.mh.HandleKeyEvent(runeKey('u')) {
		t.Error("undo should request a redraw")
	}
	if h.Index() != 0 {
		t.Errorf("Index = %d after undo, want 0", h.Index())
	}
	if f.editor.GetBrush() != image.Pt(1, 0) {
		t.Errorf("brush = %v, want (1,0)", f.editor.GetBrush())
	}
}

func TestQuitAsksWhenModified(t *testing.T) {
	f := newFixture(t)
	f.host.modified = true

	f.mh.HandleKeyEvent(key(tcell.KeyEscape))
	if quitClosed(f.quit) {
		t.Fatal("quit without confirmation")
	}
	f.mh.HandleKeyEvent(key(tcell.KeyEscape))
	if !quitClosed(f.quit) {
		t.Fatal("second ESC did not quit")
	}
	// Further quits must not panic on a closed channel.
	f.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
}

func TestQuitPendingResetByAction(t *testing.T) {
	f := newFixture(t)
	f.host.modified = true
	f.mh.HandleKeyEvent(key(tcell.KeyEscape))
	f.mh.HandleKeyEvent(runeKey(' '))
	f.mh.HandleKeyEvent(key(tcell.KeyEscape))
	if quitClosed(f.quit) {
		t.Error("confirmation survived an intervening action")
	}
}

func TestExportAction(t *testing.T) {
	f := newFixture(t)
	f.mh.HandleKeyEvent(runeKey('e'))
	if f.host.exports != 1 {
		t.Errorf("exports = %d, want 1", f.host.exports)
	}
	if text, _ := f.sb.Text(); !strings.Contains(text, "exports/poxi.png") {
		t.Errorf("status = %q", text)
	}

	f.host.copyErr = errors.New("no clipboard")
	f.mh.HandleKeyEvent(runeKey('y'))
	if text, _ := f.sb.Text(); !strings.Contains(text, "no clipboard") {
		t.Errorf("status = %q", text)
	}
}

func TestCommandMode(t *testing.T) {
	f := newFixture(t)
	var got []string
	if err := f.host.registry.Register("say", func(args []string) error {
		got = args
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	f.mh.HandleKeyEvent(runeKey(':'))
	if f.mh.GetCurrentMode() != ModeCommand {
		t.Fatal("':' did not enter command mode")
	}
	// 'q', 'u' and space are bound in normal mode but type here.
	f.typeLine("say qu x")
	if f.mh.GetCommandBuffer() != "say qu x" {
		t.Errorf("buffer = %q", f.mh.GetCommandBuffer())
	}
	f.mh.HandleKeyEvent(key(tcell.KeyBackspace2))
	f.mh.HandleKeyEvent(key(tcell.KeyEnter))

	if f.mh.GetCurrentMode() != ModeNormal {
		t.Error("enter did not return to normal mode")
	}
	if len(got) != 1 || got[0] != "qu" {
		t.Errorf("args = %v, want [qu]", got)
	}
	if f.editor.History().Len() != 0 {
		t.Error("typing in command mode painted")
	}
}

func TestCommandErrorShown(t *testing.T) {
	f := newFixture(t)
	_ = f.host.registry.Register("fail", func([]string) error { return errors.New("nope") })

	f.mh.HandleKeyEvent(runeKey(':'))
	f.typeLine("fail")
	f.mh.HandleKeyEvent(key(tcell.KeyEnter))
	if text, _ := f.sb.Text(); !strings.Contains(text, "nope") {
		t.Errorf("status = %q, want the command error", text)
	}

	f.mh.HandleKeyEvent(runeKey(':'))
	f.mh.HandleKeyEvent(key(tcell.KeyEscape))
	if f.mh.GetCurrentMode() != ModeNormal || quitClosed(f.quit) {
		t.Error("ESC in command mode should only cancel")
	}
}

func TestPointerDrag(t *testing.T) {
	f := newFixture(t)
	f.mh.HandlePointer(image.Pt(0, 0), true)
	f.mh.HandlePointer(image.Pt(3, 0), true)
	f.mh.HandlePointer(image.Pt(3, 0), false)

	h := f.editor.History()
	for x := 0; x <= 3; x++ {
		if _, ok := h.Tile(x, 0); !ok {
			t.Errorf("tile (%d,0) not painted", x)
		}
	}
	if h.Len() != 1 || h.InStroke() {
		t.Errorf("Len = %d stroke %v, want one closed batch for the drag", h.Len(), h.InStroke())
	}

	// One undo removes the whole drag.
	f.editor.Undo()
	if h.Index() != -1 {
		t.Errorf("Index = %d after one undo, want -1", h.Index())
	}
}

func TestPointerDragInsideOpenStroke(t *testing.T) {
	f := newFixture(t)
	f.editor.BeginStroke()
	f.mh.HandlePointer(image.Pt(0, 0), true)
	f.mh.HandlePointer(image.Pt(1, 0), true)
	f.mh.HandlePointer(image.Pt(1, 0), false)
	if !f.editor.History().InStroke() {
		t.Error("release closed a stroke the drag did not open")
	}
}

func TestZoomClamped(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 10; i++ {
		f.mh.zoomBy(2)
		f.mh.camera.Update(1)
	}
	if z := f.mh.camera.Zoom(); z != maxZoom {
		t.Errorf("zoom = %v, want %v", z, maxZoom)
	}
	f.mh.HandleKeyEvent(runeKey('0'))
	if z := f.mh.camera.Zoom(); z != 4 {
		t.Errorf("fit zoom = %v, want 4", z)
	}
}
