package event

import (
	"errors"
	"testing"
)

func TestEmitterLastRegistrationWins(t *testing.T) {
	e := NewEmitter()
	var got []string
	if err := e.On(KindDraw, func() { got = append(got, "first") }); err != nil {
		t.Fatalf("On: %v", err)
	}
	if err := e.On(KindDraw, func() { got = append(got, "second") }); err != nil {
		t.Fatalf("On: %v", err)
	}
	if !e.Emit(KindDraw) {
		t.Fatal("Emit returned false")
	}
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("handlers run = %v, want [second]", got)
	}
}

func TestEmitterValidation(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		fn      func()
		wantErr error
	}{
		{"invalid zero kind", KindInvalid, func() {}, ErrInvalidKind},
		{"out of range", Kind(99), func() {}, ErrInvalidKind},
		{"negative", Kind(-1), func() {}, ErrInvalidKind},
		{"nil handler", KindDraw, nil, ErrNilHandler},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEmitter()
			hooked := false
			e.OnRegister(func(Kind) { hooked = true })
			err := e.On(tt.kind, tt.fn)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("On error = %v, want %v", err, tt.wantErr)
			}
			if hooked {
				t.Error("register hook ran on a failed registration")
			}
			if e.Handler(KindDraw) != nil {
				t.Error("failed registration changed state")
			}
		})
	}
}

func TestEmitterFailedRegistrationKeepsPrevious(t *testing.T) {
	e := NewEmitter()
	ran := false
	_ = e.On(KindExport, func() { ran = true })
	if err := e.On(KindExport, nil); err == nil {
		t.Fatal("nil handler accepted")
	}
	e.Emit(KindExport)
	if !ran {
		t.Error("previous handler lost after failed registration")
	}
}

func TestEmitterOnNamed(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
		kind    Kind
	}{
		{"draw", false, KindDraw},
		{" Resize ", false, KindResize},
		{"history", false, KindHistoryChanged},
		{"", true, KindInvalid},
		{"invalid", true, KindInvalid},
		{"paint", true, KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEmitter()
			err := e.OnNamed(tt.name, func() {})
			if (err != nil) != tt.wantErr {
				t.Fatalf("OnNamed(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKind) {
					t.Errorf("error = %v, want ErrInvalidKind", err)
				}
				return
			}
			if e.Handler(tt.kind) == nil {
				t.Errorf("no handler under %v", tt.kind)
			}
		})
	}
}

func TestEmitterRegisterHook(t *testing.T) {
	e := NewEmitter()
	var kinds []Kind
	e.OnRegister(func(k Kind) { kinds = append(kinds, k) })
	_ = e.On(KindResize, func() {})
	_ = e.On(KindDraw, func() {})
	if len(kinds) != 2 || kinds[0] != KindResize || kinds[1] != KindDraw {
		t.Errorf("hook saw %v, want [resize draw]", kinds)
	}
}

func TestEmitWithoutHandler(t *testing.T) {
	e := NewEmitter()
	if e.Emit(KindDraw) {
		t.Error("Emit without handler returned true")
	}
	if e.Emit(Kind(42)) {
		t.Error("Emit of invalid kind returned true")
	}
}

func TestManagerDispatchOrderAndStop(t *testing.T) {
	m := NewManager()
	var order []int
	m.Subscribe(TypeHistoryChanged, func(Event) bool { order = append(order, 1); return false })
	m.Subscribe(TypeHistoryChanged, func(Event) bool { order = append(order, 2); return true })
	m.Subscribe(TypeHistoryChanged, func(Event) bool { order = append(order, 3); return false })
	m.Subscribe(TypeExported, nil)

	m.Dispatch(TypeHistoryChanged, HistoryChangedData{Index: 0, Len: 1})
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("handlers ran %v, want [1 2]", order)
	}
	if n := m.Subscribers(TypeExported); n != 0 {
		t.Errorf("nil handler subscribed: %d", n)
	}
	m.Dispatch(TypeAppQuit, nil) // no subscribers
}

func TestManagerPassesData(t *testing.T) {
	m := NewManager()
	var got ResizedData
	m.Subscribe(TypeResized, func(e Event) bool {
		got, _ = e.Data.(ResizedData)
		return false
	})
	m.Dispatch(TypeResized, ResizedData{Width: 8, Height: 4})
	if got.Width != 8 || got.Height != 4 {
		t.Errorf("data = %+v, want 8x4", got)
	}
}

func TestKindString(t *testing.T) {
	if KindDraw.String() != "draw" || Kind(77).String() != "invalid" {
		t.Errorf("unexpected Kind strings %q %q", KindDraw, Kind(77))
	}
	if TypeExported.String() != "Exported" {
		t.Errorf("Type string = %q", TypeExported)
	}
}
