package core

import (
	"image"
	"image/color"
	"testing"

	"github.com/bethropolis/poxi/internal/core/history"
	"github.com/bethropolis/poxi/internal/event"
	"github.com/bethropolis/poxi/internal/palette"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func newTestEditor(t *testing.T) (*Editor, *[]event.HistoryChangedData) {
	t.Helper()
	pal, _ := palette.Parse("test", []string{"#ff0000", "#0000ff"})
	e := NewEditor(history.NewManager(nil), pal)
	e.SetCanvasSize(8, 8)

	var changes []event.HistoryChangedData
	mgr := event.NewManager()
	mgr.Subscribe(event.TypeHistoryChanged, func(ev event.Event) bool {
		changes = append(changes, ev.Data.(event.HistoryChangedData))
		return false
	})
	e.SetEventManager(mgr)
	return e, &changes
}

func TestPaintUndoRedoDispatches(t *testing.T) {
	e, changes := newTestEditor(t)
	e.Paint()
	e.MoveBrush(1, 0)
	e.Paint()
	e.Undo()
	e.Redo()
	e.Redo() // at tip, no event

	want := []string{"commit", "commit", "undo", "redo"}
	if len(*changes) != len(want) {
		t.Fatalf("got %d events, want %d", len(*changes), len(want))
	}
	for i, c := range *changes {
		if c.Action != want[i] {
			t.Errorf("event %d action = %q, want %q", i, c.Action, want[i])
		}
	}
	if last := (*changes)[3]; last.Index != 1 || last.Len != 2 {
		t.Errorf("last event = %+v, want index 1 of 2", last)
	}
}

func TestBrushClamp(t *testing.T) {
	e, _ := newTestEditor(t)
	e.MoveBrush(-3, 20)
	if e.GetBrush() != image.Pt(0, 7) {
		t.Errorf("Brush = %v, want (0,7)", e.GetBrush())
	}
	e.SetCanvasSize(4, 4)
	if e.GetBrush() != image.Pt(0, 3) {
		t.Errorf("Brush after shrink = %v, want (0,3)", e.GetBrush())
	}
	e.SetCanvasSize(0, 0)
	if e.GetBrush() != image.Pt(0, 0) {
		t.Errorf("Brush on empty canvas = %v, want origin", e.GetBrush())
	}
}

func TestColorCycleAndPick(t *testing.T) {
	e, _ := newTestEditor(t)
	if e.Color() != red {
		t.Fatalf("initial colour = %v, want red", e.Color())
	}
	if e.NextColor() != blue {
		t.Errorf("NextColor = %v, want blue", e.Color())
	}
	e.Paint()
	e.PrevColor()
	if e.PickColor() != true || e.Color() != blue {
		t.Errorf("PickColor = %v, want blue from the canvas", e.Color())
	}
	e.MoveBrush(1, 1)
	if e.PickColor() {
		t.Error("PickColor over an empty tile returned true")
	}
}

func TestStrokeToggle(t *testing.T) {
	e, _ := newTestEditor(t)
	if !e.ToggleStroke() {
		t.Fatal("ToggleStroke did not open a stroke")
	}
	e.Paint()
	e.MoveBrush(1, 0)
	e.Paint()
	e.Erase()
	if e.ToggleStroke() {
		t.Fatal("ToggleStroke did not close the stroke")
	}
	if n := e.History().Len(); n != 1 {
		t.Errorf("history length = %d, want 1 batch for the stroke", n)
	}
}

func TestPaintLine(t *testing.T) {
	e, _ := newTestEditor(t)
	e.PaintLine(image.Pt(0, 0), image.Pt(3, 1))
	if n := e.History().Len(); n != 1 {
		t.Errorf("history length = %d, want 1", n)
	}
	for _, p := range []image.Point{{0, 0}, {3, 1}} {
		if tile, ok := e.History().Tile(p.X, p.Y); !ok || tile.Color() != red {
			t.Errorf("tile %v not painted", p)
		}
	}
}

func TestLinePoints(t *testing.T) {
	tests := []struct {
		a, b image.Point
		n    int
	}{
		{image.Pt(0, 0), image.Pt(0, 0), 1},
		{image.Pt(0, 0), image.Pt(4, 0), 5},
		{image.Pt(2, 2), image.Pt(-1, -1), 4},
		{image.Pt(0, 0), image.Pt(5, 2), 6},
	}
	for _, tt := range tests {
		pts := linePoints(tt.a, tt.b)
		if len(pts) != tt.n || pts[0] != tt.a || pts[len(pts)-1] != tt.b {
			t.Errorf("linePoints(%v,%v) = %v, want %d points", tt.a, tt.b, pts, tt.n)
		}
	}
}

func TestFillBackgroundAndClear(t *testing.T) {
	e, changes := newTestEditor(t)
	e.FillBackground()
	if b := e.History().Bounds(); b != image.Rect(0, 0, 8, 8) {
		t.Errorf("Bounds = %v, want canvas", b)
	}
	e.Clear()
	if e.History().Len() != 0 {
		t.Error("Clear left batches")
	}
	if got := (*changes)[len(*changes)-1].Action; got != "clear" {
		t.Errorf("last action = %q, want clear", got)
	}
}
