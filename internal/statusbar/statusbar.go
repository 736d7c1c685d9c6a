// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behaviour of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleStroke    tcell.Style // stroke indicator
	StyleMessage   tcell.Style
	StyleCommand   tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleStroke:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleCommand:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the status line at the bottom of the terminal.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	brush    image.Point
	color    color.NRGBA
	index    int
	length   int
	zoom     float64
	frames   uint64
	inStroke bool
	mode     string

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, index: -1, now: time.Now}
}

// SetConfig replaces the styles and message timeout.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetBrush updates the brush position and colour.
func (sb *StatusBar) SetBrush(p image.Point, c color.NRGBA) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.brush = p
	sb.color = c
}

// SetHistory updates the history position.
func (sb *StatusBar) SetHistory(index, length int, inStroke bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.index = index
	sb.length = length
	sb.inStroke = inStroke
}

// SetView updates zoom and the frame counter.
func (sb *StatusBar) SetView(zoom float64, frames uint64) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.zoom = zoom
	sb.frames = frames
}

// SetEditorMode updates the displayed input mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.mode = mode
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// defaultText builds the status line. Caller holds the lock.
func (sb *StatusBar) defaultText() string {
	stroke := ""
	if sb.inStroke {
		stroke = " [stroke]"
	}
	mode := ""
	if sb.mode != "" {
		mode = " -- " + sb.mode
	}
	return fmt.Sprintf("(%d,%d) #%02x%02x%02x%02x -- batch %d/%d%s -- zoom %.1fx -- frame %d%s",
		sb.brush.X, sb.brush.Y, sb.color.R, sb.color.G, sb.color.B, sb.color.A,
		sb.index+1, sb.length, stroke, sb.zoom, sb.frames, mode)
}

// Text returns what Draw would show and the style to show it with.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	switch {
	case active && len(sb.tempMessage) > 0 && sb.tempMessage[0] == ':':
		return sb.tempMessage, sb.config.StyleCommand
	case active:
		return sb.tempMessage, sb.config.StyleMessage
	case sb.inStroke:
		return sb.defaultText(), sb.config.StyleStroke
	default:
		return sb.defaultText(), sb.config.StyleDefault
	}
}

// Draw renders the status bar on the last screen row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	text, style := sb.Text()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	x := 0
	for gr.Next() {
		w := gr.Width()
		if x+w > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
}
