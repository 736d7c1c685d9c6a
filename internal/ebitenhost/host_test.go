package ebitenhost

import (
	"testing"
	"time"

	"github.com/bethropolis/poxi/internal/input"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestHostTimers(t *testing.T) {
	h := NewHost()
	now := time.Unix(0, 0)
	h.now = func() time.Time { return now }

	var order []string
	h.After(20*time.Millisecond, func() { order = append(order, "late") })
	h.After(10*time.Millisecond, func() {
		order = append(order, "early")
		h.After(0, func() { order = append(order, "nested") })
	})

	if n := h.RunTimers(); n != 0 {
		t.Fatalf("fired %d timers before they were due", n)
	}
	now = now.Add(25 * time.Millisecond)
	if n := h.RunTimers(); n != 2 {
		t.Fatalf("fired %d, want 2", n)
	}
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("order = %v", order)
	}
	h.RunTimers()
	if len(order) != 3 || order[2] != "nested" {
		t.Errorf("nested timer did not wait for the next call: %v", order)
	}
}

func TestHostFrames(t *testing.T) {
	h := NewHost()
	ran := 0
	var frame func()
	frame = func() {
		ran++
		h.RequestFrame(frame)
	}
	h.RequestFrame(frame)

	for i := 0; i < 3; i++ {
		if n := h.RunFrames(); n != 1 {
			t.Fatalf("frame %d ran %d callbacks", i, n)
		}
	}
	if ran != 3 || h.PendingFrames() != 1 {
		t.Errorf("ran = %d pending = %d", ran, h.PendingFrames())
	}
}

func TestDecodeNormal(t *testing.T) {
	got := decodeNormal([]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeySpace}, nil, false, false)
	if len(got) != 2 || got[0].Action != input.ActionMoveUp || got[1].Action != input.ActionPaint {
		t.Errorf("plain keys = %+v", got)
	}

	got = decodeNormal([]ebiten.Key{ebiten.KeyArrowUp}, nil, true, false)
	if len(got) != 1 || got[0].Action != input.ActionPanUp {
		t.Errorf("shift arrow = %+v", got)
	}

	got = decodeNormal([]ebiten.Key{ebiten.KeyZ}, nil, false, true)
	if len(got) != 1 || got[0].Action != input.ActionUndo {
		t.Errorf("ctrl z = %+v", got)
	}

	got = decodeNormal([]ebiten.Key{ebiten.KeySemicolon}, []rune{':'}, true, false)
	if len(got) != 1 || got[0].Action != input.ActionEnterCommandMode {
		t.Errorf("colon = %+v", got)
	}
}

func TestDecodeCommand(t *testing.T) {
	got := decodeCommand([]ebiten.Key{ebiten.KeyQ, ebiten.KeyEnter}, []rune{'q'})
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got[0] != (input.ActionEvent{Action: input.ActionInsertRune, Rune: 'q'}) {
		t.Errorf("typed = %+v", got[0])
	}
	if got[1].Action != input.ActionInsertNewLine {
		t.Errorf("enter = %+v", got[1])
	}
}
