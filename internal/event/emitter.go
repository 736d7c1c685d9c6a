package event

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/poxi/internal/logger"
)

// Kind names a single-slot emitter channel.
type Kind int

const (
	KindInvalid Kind = iota
	KindDraw
	KindHistoryChanged
	KindResize
	KindExport

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:        "invalid",
	KindDraw:           "draw",
	KindHistoryChanged: "history",
	KindResize:         "resize",
	KindExport:         "export",
}

func (k Kind) String() string {
	if !k.Valid() {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// Valid reports whether k names a real channel.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

var (
	// ErrInvalidKind is returned for unknown or empty kinds.
	ErrInvalidKind = errors.New("invalid emitter kind")
	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("emitter handler is nil")
)

// ParseKind maps a textual kind such as "draw" to its Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := KindDraw; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("%w: %q", ErrInvalidKind, name)
}

// Emitter holds at most one handler per kind. A later registration replaces
// the earlier one.
type Emitter struct {
	slots      [kindCount]func()
	onRegister func(Kind)
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// OnRegister sets a hook run after every successful registration.
func (e *Emitter) OnRegister(fn func(Kind)) {
	e.onRegister = fn
}

// On registers fn for kind. On error nothing changes.
func (e *Emitter) On(kind Kind, fn func()) error {
	if !kind.Valid() {
		return fmt.Errorf("register %d: %w", int(kind), ErrInvalidKind)
	}
	if fn == nil {
		return fmt.Errorf("register %s: %w", kind, ErrNilHandler)
	}
	replaced := e.slots[kind] != nil
	e.slots[kind] = fn
	logger.DebugTagf("event", "Emitter: registered %s handler (replaced=%v)", kind, replaced)
	if e.onRegister != nil {
		e.onRegister(kind)
	}
	return nil
}

// OnNamed registers fn under a textual kind.
func (e *Emitter) OnNamed(name string, fn func()) error {
	kind, err := ParseKind(name)
	if err != nil {
		return err
	}
	return e.On(kind, fn)
}

// Handler returns the handler registered for kind, or nil.
func (e *Emitter) Handler(kind Kind) func() {
	if !kind.Valid() {
		return nil
	}
	return e.slots[kind]
}

// Emit runs the handler for kind and reports whether one was registered.
func (e *Emitter) Emit(kind Kind) bool {
	fn := e.Handler(kind)
	if fn == nil {
		return false
	}
	fn()
	return true
}
