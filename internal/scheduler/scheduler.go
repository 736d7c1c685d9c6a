// Package scheduler drives the frame loop. While idle it re-checks on a
// fixed interval without drawing; once gated it draws on every host frame.
package scheduler

import (
	"time"

	"github.com/bethropolis/poxi/internal/logger"
)

// Host delivers callbacks. Implementations must run them serially.
type Host interface {
	// RequestFrame schedules fn for the next display frame.
	RequestFrame(fn func())
	// After schedules fn once d has elapsed.
	After(d time.Duration, fn func())
}

// State of the loop.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// DrawFunc runs the registered draw handler and reports whether one ran.
type DrawFunc func() bool

// Scheduler owns the frame counter and the idle/active state.
type Scheduler struct {
	host     Host
	interval time.Duration
	draw     DrawFunc

	state   State
	frames  uint64
	started bool
}

// New creates an idle scheduler. A non-positive interval falls back to 16ms.
func New(host Host, interval time.Duration, draw DrawFunc) *Scheduler {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Scheduler{host: host, interval: interval, draw: draw}
}

// Start begins the loop. Calling it again has no effect.
func (s *Scheduler) Start() {
	if s.started {
		return
	}
	s.started = true
	s.loop()
}

func (s *Scheduler) loop() {
	if s.state == Idle {
		s.host.After(s.interval, s.loop)
		return
	}
	s.host.RequestFrame(s.frame)
}

func (s *Scheduler) frame() {
	if s.draw != nil {
		s.draw()
	}
	s.frames++
	s.loop()
}

// Gate switches the loop to Active. It only takes effect before the first
// frame has been counted.
func (s *Scheduler) Gate() bool {
	if s.state == Active || s.frames != 0 {
		return false
	}
	s.state = Active
	logger.DebugTagf("scheduler", "Scheduler: gated to active")
	return true
}

// Redraw draws synchronously. The frame counter only advances when a
// handler ran.
func (s *Scheduler) Redraw() bool {
	if s.draw == nil || !s.draw() {
		return false
	}
	s.frames++
	return true
}

// Frames returns the number of frames drawn.
func (s *Scheduler) Frames() uint64 { return s.frames }

// State returns the loop state.
func (s *Scheduler) State() State { return s.state }
