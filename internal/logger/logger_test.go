package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"err", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAllowed(t *testing.T) {
	set := func(items ...string) map[string]struct{} { return sliceToSet(items) }
	tests := []struct {
		name              string
		key               string
		enabled, disabled map[string]struct{}
		want              bool
	}{
		{"no filters", "render", nil, nil, true},
		{"disabled hit", "render", nil, set("render"), false},
		{"enabled hit", "render", set("render"), nil, true},
		{"enabled miss", "app", set("render"), nil, false},
		{"disabled overrides enabled", "render", set("render"), set("render"), false},
		{"case insensitive", "Render", set("render"), nil, true},
	}
	for _, tt := range tests {
		if got := allowed(tt.key, tt.enabled, tt.disabled); got != tt.want {
			t.Errorf("%s: allowed(%q) = %v, want %v", tt.name, tt.key, got, tt.want)
		}
	}
}

func handle(t *testing.T, h slog.Handler, msg string, attrs ...slog.Attr) {
	t.Helper()
	r := slog.NewRecord(time.Now(), slog.LevelInfo, msg, 0)
	r.AddAttrs(attrs...)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle: %v", err)
	}
}

func TestFilteringHandlerTags(t *testing.T) {
	var out bytes.Buffer
	cfg := NewConfig()
	cfg.EnabledTags = []string{"history", "render"}
	cfg.DisabledTags = []string{"render"}
	cfg.process()
	h := newFilteringHandler(slog.NewTextHandler(&out, nil), &cfg)

	handle(t, h, "kept", slog.String(tagKey, "history"))
	handle(t, h, "untagged")
	handle(t, h, "disabled", slog.String(tagKey, "render"))
	handle(t, h, "unknown", slog.String(tagKey, "camera"))

	got := out.String()
	if !strings.Contains(got, "kept") {
		t.Errorf("output %q missing tagged record", got)
	}
	for _, dropped := range []string{"untagged", "disabled", "unknown"} {
		if strings.Contains(got, dropped) {
			t.Errorf("output %q contains filtered record %q", got, dropped)
		}
	}
}

func TestFilteringHandlerNoConfig(t *testing.T) {
	var out bytes.Buffer
	h := newFilteringHandler(slog.NewTextHandler(&out, nil), nil)
	handle(t, h, "passthrough")
	if !strings.Contains(out.String(), "passthrough") {
		t.Errorf("output %q, want record passed through", out.String())
	}
}
