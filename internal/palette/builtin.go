package palette

// builtins returns fresh copies of the compiled-in palettes.
func builtins() []*Palette {
	defs := []struct {
		name   string
		colors []string
	}{
		{"PICO-8", []string{
			"#000000", "#1d2b53", "#7e2553", "#008751",
			"#ab5236", "#5f574f", "#c2c3c7", "#fff1e8",
			"#ff004d", "#ffa300", "#ffec27", "#00e436",
			"#29adff", "#83769c", "#ff77a8", "#ffccaa",
		}},
		{"Grayscale", []string{
			"#000000", "#333333", "#666666", "#999999", "#cccccc", "#ffffff",
		}},
		{"Game Boy", []string{
			"#0f380f", "#306230", "#8bac0f", "#9bbc0f",
		}},
	}

	out := make([]*Palette, 0, len(defs))
	for _, d := range defs {
		p, _ := Parse(d.name, d.colors)
		out = append(out, p)
	}
	return out
}
