package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestGetStyleFallback(t *testing.T) {
	th := &Theme{
		Name: "test",
		Styles: map[string]tcell.Style{
			StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorRed),
			StyleStatusBar: tcell.StyleDefault.Foreground(tcell.ColorBlue),
		},
	}
	if got := th.GetStyle(StyleStatusBarStroke); got != th.Styles[StyleStatusBar] {
		t.Error("dotted name did not fall back to its base")
	}
	if got := th.GetStyle("Missing"); got != th.Styles[StyleDefault] {
		t.Error("unknown name did not fall back to Default")
	}
	empty := &Theme{Name: "empty"}
	if got := empty.GetStyle("x"); got != tcell.StyleDefault {
		t.Error("theme without Default should give tcell.StyleDefault")
	}
}

func TestManagerBuiltins(t *testing.T) {
	m := NewManager("")
	if m.Current().Name != DefaultName {
		t.Errorf("Current = %q, want %q", m.Current().Name, DefaultName)
	}
	if err := m.SetTheme("poxi light"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if m.Current().IsDark {
		t.Error("light theme reports dark")
	}
	if err := m.SetTheme("nope"); err == nil {
		t.Error("SetTheme accepted an unknown theme")
	}
}

func TestLoadThemesFromDir(t *testing.T) {
	dir := t.TempDir()
	data := `
name = "Mono"
is_dark = true

[styles.Default]
fg = "#ffffff"
bg = "reset"

[styles."Checker.light"]
bg = "#333"

[styles.Brush]
fg = "not-a-colour"
`
	if err := os.WriteFile(filepath.Join(dir, "mono.toml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(dir)
	th, ok := m.GetTheme("MONO")
	if !ok {
		t.Fatalf("themes = %v, want Mono loaded", m.ListThemes())
	}
	if _, ok := th.Styles[StyleBrush]; ok {
		t.Error("invalid style should be skipped")
	}
	if got := th.Background(StyleCheckerLight); got != tcell.NewRGBColor(0x33, 0x33, 0x33) {
		t.Errorf("Checker.light bg = %v", got)
	}
	if len(m.ListThemes()) != 3 {
		t.Errorf("ListThemes = %v", m.ListThemes())
	}
}
