package palette

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ff0044", color.NRGBA{R: 255, G: 0, B: 68, A: 255}, false},
		{" #FFFFFF ", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#f00", color.NRGBA{R: 255, A: 255}, false},
		{"#00000080", color.NRGBA{A: 128}, false},
		{"transparent", color.NRGBA{}, false},
		{"ff0044", color.NRGBA{}, true},
		{"#zzzzzz", color.NRGBA{}, true},
		{"#0000000g", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	for _, c := range []color.NRGBA{{R: 1, G: 2, B: 3, A: 255}, {R: 200, B: 9, A: 17}} {
		got, err := ParseColor(FormatColor(c))
		if err != nil || got != c {
			t.Errorf("round trip of %v = %v (%v)", c, got, err)
		}
	}
}

func TestPaletteSelectionWraps(t *testing.T) {
	p, errs := Parse("test", []string{"#ff0000", "#00ff00", "#0000ff"})
	if len(errs) != 0 {
		t.Fatalf("Parse errors: %v", errs)
	}
	if p.Prev() != (color.NRGBA{B: 255, A: 255}) || p.Index() != 2 {
		t.Errorf("Prev from 0 = index %d, want 2", p.Index())
	}
	if p.Next() != (color.NRGBA{R: 255, A: 255}) || p.Index() != 0 {
		t.Errorf("Next from 2 = index %d, want 0", p.Index())
	}
	p.Select(-4)
	if p.Index() != 2 {
		t.Errorf("Select(-4) index = %d, want 2", p.Index())
	}
	if i := p.Find(color.NRGBA{G: 255, A: 255}); i != 1 {
		t.Errorf("Find(green) = %d, want 1", i)
	}
}

func TestEmptyPaletteGetsBlack(t *testing.T) {
	p, errs := Parse("bad", []string{"nope"})
	if len(errs) != 1 {
		t.Errorf("errs = %v, want 1", errs)
	}
	if p.Len() != 1 || p.Current() != (color.NRGBA{A: 255}) {
		t.Errorf("palette = %v, want [black]", p.Colors)
	}
}

func TestBlend(t *testing.T) {
	a := color.NRGBA{R: 255, A: 255}
	b := color.NRGBA{B: 255, A: 0}
	if got := Blend(a, b, 0); got != a {
		t.Errorf("Blend t=0 = %v, want %v", got, a)
	}
	if got := Blend(a, b, 1); got != b {
		t.Errorf("Blend t=1 = %v, want %v", got, b)
	}
	if got := Blend(a, b, 0.5); got.A != 128 {
		t.Errorf("Blend t=0.5 alpha = %d, want 128", got.A)
	}
}

func TestManagerLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("sunset.toml", "name = \"Sunset\"\ncolors = [\"#ff0044\", \"#ffaa00\", \"oops\"]\n")
	write("noname.toml", "colors = [\"#123456\"]\n")
	write("empty.toml", "colors = [\"bad\"]\n")
	write("readme.txt", "ignored")

	m := NewManager(dir)
	sunset, ok := m.Get("sunset")
	if !ok {
		t.Fatal("sunset palette not loaded")
	}
	if sunset.Len() != 2 {
		t.Errorf("sunset has %d colours, want 2", sunset.Len())
	}
	if _, ok := m.Get("noname"); !ok {
		t.Error("palette without name not registered under its file name")
	}
	if _, ok := m.Get("empty"); ok {
		t.Error("palette without valid colours was registered")
	}

	if m.Current().Name != "PICO-8" {
		t.Errorf("default palette = %q, want PICO-8", m.Current().Name)
	}
	if err := m.SetActive("SUNSET"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if m.Current() != sunset {
		t.Error("SetActive did not switch palettes")
	}
	if err := m.SetActive("missing"); err == nil {
		t.Error("SetActive(missing) returned nil")
	}
	if names := m.Names(); len(names) != 5 {
		t.Errorf("Names = %v, want 3 built-ins and 2 files", names)
	}
}

func TestManagerMissingDirectory(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "none"))
	if len(m.Names()) != 3 {
		t.Errorf("Names = %v, want built-ins only", m.Names())
	}
}
