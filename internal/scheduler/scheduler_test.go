package scheduler

import (
	"testing"
	"time"
)

type drawCounter struct {
	calls      int
	registered bool
}

func (d *drawCounter) draw() bool {
	if !d.registered {
		return false
	}
	d.calls++
	return true
}

func TestIdleDoesNotDraw(t *testing.T) {
	host := NewManualHost()
	d := &drawCounter{registered: true}
	s := New(host, 16*time.Millisecond, d.draw)
	s.Start()

	if s.State() != Idle {
		t.Fatalf("State = %v, want idle", s.State())
	}
	if host.PendingTimers() != 1 || host.PendingFrames() != 0 {
		t.Fatalf("timers/frames = %d/%d, want 1/0", host.PendingTimers(), host.PendingFrames())
	}
	if fired := host.Advance(15 * time.Millisecond); fired != 0 {
		t.Errorf("fired %d timers before the idle interval", fired)
	}
	for i := 0; i < 5; i++ {
		host.Advance(16 * time.Millisecond)
	}
	if d.calls != 0 || s.Frames() != 0 {
		t.Errorf("idle loop drew: calls %d frames %d", d.calls, s.Frames())
	}
	if host.PendingTimers() != 1 {
		t.Errorf("PendingTimers = %d, want 1 re-armed poll", host.PendingTimers())
	}
}

func TestGateStartsFrames(t *testing.T) {
	host := NewManualHost()
	d := &drawCounter{registered: true}
	s := New(host, 16*time.Millisecond, d.draw)
	s.Start()

	if !s.Gate() {
		t.Fatal("Gate returned false on a fresh scheduler")
	}
	if s.Gate() {
		t.Error("second Gate returned true")
	}
	host.Advance(16 * time.Millisecond) // idle poll notices the gate

	for i := 1; i <= 3; i++ {
		if n := host.Frame(); n != 1 {
			t.Fatalf("frame %d ran %d callbacks, want 1", i, n)
		}
		if s.Frames() != uint64(i) || d.calls != i {
			t.Errorf("after frame %d: Frames %d calls %d", i, s.Frames(), d.calls)
		}
	}
	if s.State() != Active {
		t.Errorf("State = %v, want active", s.State())
	}
}

func TestGateAfterFramesIsIgnored(t *testing.T) {
	d := &drawCounter{registered: true}
	s := New(NewManualHost(), 0, d.draw)
	s.Redraw()
	if s.Gate() {
		t.Error("Gate took effect after a frame was counted")
	}
	if s.State() != Idle {
		t.Errorf("State = %v, want idle", s.State())
	}
}

func TestRedraw(t *testing.T) {
	tests := []struct {
		name       string
		draw       DrawFunc
		wantOK     bool
		wantFrames uint64
	}{
		{"nil draw", nil, false, 0},
		{"no handler", (&drawCounter{}).draw, false, 0},
		{"handler", (&drawCounter{registered: true}).draw, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(NewManualHost(), 0, tt.draw)
			if ok := s.Redraw(); ok != tt.wantOK {
				t.Errorf("Redraw = %v, want %v", ok, tt.wantOK)
			}
			if s.Frames() != tt.wantFrames {
				t.Errorf("Frames = %d, want %d", s.Frames(), tt.wantFrames)
			}
		})
	}
}

func TestStartIsIdempotent(t *testing.T) {
	host := NewManualHost()
	s := New(host, 0, nil)
	s.Start()
	s.Start()
	if host.PendingTimers() != 1 {
		t.Errorf("PendingTimers = %d, want 1", host.PendingTimers())
	}
}

func TestTickerHostDeliversFrames(t *testing.T) {
	host := NewTickerHost(200)
	host.Start()
	defer host.Stop()

	ran := make(chan int, 2)
	host.RequestFrame(func() { ran <- 1 })
	host.After(time.Millisecond, func() { ran <- 2 })

	got := map[int]bool{}
	deadline := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case fn := <-host.C():
			fn()
		case v := <-ran:
			got[v] = true
		case <-deadline:
			t.Fatalf("callbacks delivered: %v, want frame and timer", got)
		}
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Active.String() != "active" || State(9).String() != "unknown" {
		t.Error("unexpected State strings")
	}
}
