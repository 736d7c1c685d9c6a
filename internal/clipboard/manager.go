// Package clipboard copies text to the system clipboard, keeping an internal
// register that is used whenever the system clipboard is off or unavailable.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/poxi/internal/logger"
)

// ErrEmpty is returned by Paste when nothing was copied.
var ErrEmpty = errors.New("clipboard is empty")

// Backend is the system clipboard.
type Backend interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type systemBackend struct{}

func (systemBackend) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (systemBackend) ReadAll() (string, error)   { return clipboard.ReadAll() }

// Manager handles copy and paste.
type Manager struct {
	register string
	backend  Backend // nil when the system clipboard is not used
}

// NewManager creates a manager. useSystem enables the system clipboard when
// the platform supports it.
func NewManager(useSystem bool) *Manager {
	m := &Manager{}
	if useSystem && !clipboard.Unsupported {
		m.backend = systemBackend{}
	} else if useSystem {
		logger.Warnf("Clipboard: system clipboard unsupported, using internal register")
	}
	return m
}

// NewManagerWithBackend creates a manager over a custom backend.
func NewManagerWithBackend(b Backend) *Manager {
	return &Manager{backend: b}
}

// Copy stores text in the register and, if enabled, the system clipboard.
// It reports whether the system clipboard received the text.
func (m *Manager) Copy(text string) bool {
	m.register = text
	if m.backend == nil {
		logger.Debugf("Clipboard: copied %d bytes to register", len(text))
		return false
	}
	if err := m.backend.WriteAll(text); err != nil {
		logger.Warnf("Clipboard: system copy failed, kept in register: %v", err)
		return false
	}
	logger.Debugf("Clipboard: copied %d bytes to system clipboard", len(text))
	return true
}

// Paste returns the system clipboard text, falling back to the register.
func (m *Manager) Paste() (string, error) {
	if m.backend != nil {
		text, err := m.backend.ReadAll()
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			logger.Debugf("Clipboard: system paste failed, using register: %v", err)
		}
	}
	if m.register == "" {
		return "", ErrEmpty
	}
	return m.register, nil
}

// System reports whether the system clipboard is in use.
func (m *Manager) System() bool {
	return m.backend != nil
}
