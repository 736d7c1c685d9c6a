// Package ebitenhost runs the editor inside an ebiten window.
package ebitenhost

import (
	"sort"
	"sync"
	"time"

	"github.com/bethropolis/poxi/internal/scheduler"
)

// Host is a scheduler.Host driven by ebiten's game loop. Frame requests run
// in the next Draw, timers run from Update once they are due. Requests may
// come from any goroutine.
type Host struct {
	mu     sync.Mutex
	frames []func()
	timers []timer
	now    func() time.Time
}

type timer struct {
	at time.Time
	fn func()
}

// NewHost creates an empty Host.
func NewHost() *Host {
	return &Host{now: time.Now}
}

// RequestFrame implements scheduler.Host.
func (h *Host) RequestFrame(fn func()) {
	h.mu.Lock()
	h.frames = append(h.frames, fn)
	h.mu.Unlock()
}

// After implements scheduler.Host.
func (h *Host) After(d time.Duration, fn func()) {
	h.mu.Lock()
	h.timers = append(h.timers, timer{at: h.now().Add(d), fn: fn})
	h.mu.Unlock()
}

// RunTimers fires every due timer in deadline order. Timers added while
// running wait for the next call.
func (h *Host) RunTimers() int {
	h.mu.Lock()
	now := h.now()
	sort.SliceStable(h.timers, func(i, j int) bool { return h.timers[i].at.Before(h.timers[j].at) })
	n := sort.Search(len(h.timers), func(i int) bool { return h.timers[i].at.After(now) })
	due := append([]timer(nil), h.timers[:n]...)
	h.timers = append(h.timers[:0], h.timers[n:]...)
	h.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// RunFrames runs the callbacks queued for this frame.
func (h *Host) RunFrames() int {
	h.mu.Lock()
	pending := h.frames
	h.frames = nil
	h.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// PendingFrames returns the number of queued frame callbacks.
func (h *Host) PendingFrames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.frames)
}

var _ scheduler.Host = (*Host)(nil)
