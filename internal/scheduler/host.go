package scheduler

import (
	"sort"
	"sync"
	"time"
)

// TickerHost is a Host backed by a frame ticker. Callbacks are not run by
// the host itself: they are handed out on C so the owner's loop runs them
// one at a time.
type TickerHost struct {
	frameInterval time.Duration
	calls         chan func()
	quit          chan struct{}

	mu     sync.Mutex
	frames []func()
	once   sync.Once
}

// NewTickerHost creates a host delivering frames at fps. fps <= 0 uses 60.
func NewTickerHost(fps int) *TickerHost {
	if fps <= 0 {
		fps = 60
	}
	return &TickerHost{
		frameInterval: time.Second / time.Duration(fps),
		calls:         make(chan func(), 64),
		quit:          make(chan struct{}),
	}
}

// C returns the channel callbacks are delivered on.
func (h *TickerHost) C() <-chan func() { return h.calls }

// Start runs the frame ticker until Stop.
func (h *TickerHost) Start() {
	go func() {
		ticker := time.NewTicker(h.frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-h.quit:
				return
			case <-ticker.C:
				h.mu.Lock()
				pending := h.frames
				h.frames = nil
				h.mu.Unlock()
				for _, fn := range pending {
					if !h.deliver(fn) {
						return
					}
				}
			}
		}
	}()
}

func (h *TickerHost) deliver(fn func()) bool {
	select {
	case h.calls <- fn:
		return true
	case <-h.quit:
		return false
	}
}

// Stop ends delivery. Pending callbacks are dropped.
func (h *TickerHost) Stop() {
	h.once.Do(func() { close(h.quit) })
}

// RequestFrame implements Host.
func (h *TickerHost) RequestFrame(fn func()) {
	h.mu.Lock()
	h.frames = append(h.frames, fn)
	h.mu.Unlock()
}

// After implements Host.
func (h *TickerHost) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { h.deliver(fn) })
}

var _ Host = (*TickerHost)(nil)

// ManualHost is a Host driven explicitly, for tests and headless use.
type ManualHost struct {
	now    time.Duration
	frames []func()
	timers []timer
}

type timer struct {
	at time.Duration
	fn func()
}

// NewManualHost creates a ManualHost at time zero.
func NewManualHost() *ManualHost {
	return &ManualHost{}
}

// RequestFrame implements Host.
func (h *ManualHost) RequestFrame(fn func()) {
	h.frames = append(h.frames, fn)
}

// After implements Host.
func (h *ManualHost) After(d time.Duration, fn func()) {
	h.timers = append(h.timers, timer{at: h.now + d, fn: fn})
}

// Frame runs the callbacks queued for the next frame and returns how many
// ran. Callbacks queued while running wait for the following frame.
func (h *ManualHost) Frame() int {
	pending := h.frames
	h.frames = nil
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Advance moves the clock forward by d and fires every timer that came due,
// in deadline order.
func (h *ManualHost) Advance(d time.Duration) int {
	h.now += d
	fired := 0
	for {
		sort.SliceStable(h.timers, func(i, j int) bool { return h.timers[i].at < h.timers[j].at })
		if len(h.timers) == 0 || h.timers[0].at > h.now {
			return fired
		}
		t := h.timers[0]
		h.timers = h.timers[1:]
		t.fn()
		fired++
	}
}

// PendingFrames returns the number of queued frame callbacks.
func (h *ManualHost) PendingFrames() int { return len(h.frames) }

// PendingTimers returns the number of queued timers.
func (h *ManualHost) PendingTimers() int { return len(h.timers) }

var _ Host = (*ManualHost)(nil)
