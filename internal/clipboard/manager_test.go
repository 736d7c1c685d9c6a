package clipboard

import (
	"errors"
	"testing"
)

type fakeBackend struct {
	text     string
	writeErr error
	readErr  error
}

func (f *fakeBackend) WriteAll(text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.text = text
	return nil
}

func (f *fakeBackend) ReadAll() (string, error) {
	return f.text, f.readErr
}

func TestRegisterOnly(t *testing.T) {
	m := NewManager(false)
	if m.System() {
		t.Fatal("System = true with system clipboard disabled")
	}
	if _, err := m.Paste(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Paste on empty = %v, want ErrEmpty", err)
	}
	if m.Copy("#ff0044") {
		t.Error("Copy reported a system write")
	}
	if got, err := m.Paste(); err != nil || got != "#ff0044" {
		t.Errorf("Paste = %q, %v", got, err)
	}
}

func TestSystemBackend(t *testing.T) {
	b := &fakeBackend{}
	m := NewManagerWithBackend(b)
	if !m.Copy("data:image/png;base64,AAAA") {
		t.Error("Copy did not reach the backend")
	}
	if b.text != "data:image/png;base64,AAAA" {
		t.Errorf("backend text = %q", b.text)
	}

	b.text = "from elsewhere"
	if got, _ := m.Paste(); got != "from elsewhere" {
		t.Errorf("Paste = %q, want the system text", got)
	}
}

func TestSystemFailureFallsBack(t *testing.T) {
	b := &fakeBackend{writeErr: errors.New("no display"), readErr: errors.New("no display")}
	m := NewManagerWithBackend(b)
	if m.Copy("abc") {
		t.Error("Copy reported success on a failing backend")
	}
	if got, err := m.Paste(); err != nil || got != "abc" {
		t.Errorf("Paste = %q, %v, want register fallback", got, err)
	}
}
