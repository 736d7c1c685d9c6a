// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/poxi/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the terminal frontend.
const (
	StyleDefault          = "Default"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarStroke  = "StatusBar.stroke"
	StyleStatusBarMessage = "StatusBar.message"
	StyleStatusBarCommand = "StatusBar.command"
	StyleCheckerLight     = "Checker.light"
	StyleCheckerDark      = "Checker.dark"
	StyleBrush            = "Brush"
)

// Theme is a named set of terminal styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to its base name
// (the part before the first dot) and then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dot := strings.Index(name, "."); dot != -1 {
		if style, ok := t.Styles[name[:dot]]; ok {
			logger.DebugTagf("theme", "'%s': style '%s' not found, using base '%s'", t.Name, name, name[:dot])
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': style '%s' and 'Default' not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Background returns the background colour of the named style.
func (t *Theme) Background(name string) tcell.Color {
	_, bg, _ := t.GetStyle(name).Decompose()
	return bg
}

func newDark() *Theme {
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)

	return &Theme{
		Name:   "Poxi Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleStatusBar:        tcell.StyleDefault.Background(bg).Foreground(fg),
			StyleStatusBarStroke:  tcell.StyleDefault.Background(bg).Foreground(yellow),
			StyleStatusBarMessage: tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),
			StyleStatusBarCommand: tcell.StyleDefault.Background(bg).Foreground(green).Bold(true),
			StyleCheckerLight:     base.Background(tcell.NewHexColor(0x3a3f48)),
			StyleCheckerDark:      base.Background(tcell.NewHexColor(0x31353d)),
			StyleBrush:            base.Foreground(yellow).Bold(true),
		},
	}
}

func newLight() *Theme {
	bg := tcell.NewHexColor(0xd8dce3)
	fg := tcell.NewHexColor(0x383a42)
	blue := tcell.NewHexColor(0x4078f2)
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)

	return &Theme{
		Name:   "Poxi Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleStatusBar:        tcell.StyleDefault.Background(bg).Foreground(fg),
			StyleStatusBarStroke:  tcell.StyleDefault.Background(bg).Foreground(blue),
			StyleStatusBarMessage: tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),
			StyleStatusBarCommand: tcell.StyleDefault.Background(bg).Foreground(blue).Bold(true),
			StyleCheckerLight:     base.Background(tcell.NewHexColor(0xffffff)),
			StyleCheckerDark:      base.Background(tcell.NewHexColor(0xe6e6e6)),
			StyleBrush:            base.Foreground(blue).Bold(true),
		},
	}
}
