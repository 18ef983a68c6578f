package shapedemo

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 400 || cfg.Height != 400 {
		t.Errorf("size = %dx%d, want 400x400", cfg.Width, cfg.Height)
	}
	if cfg.ClearColor != Gray {
		t.Errorf("ClearColor = %+v, want gray", cfg.ClearColor)
	}
	if cfg.FillColor != Yellow {
		t.Errorf("FillColor = %+v, want yellow", cfg.FillColor)
	}
	if cfg.QuitOnEscape {
		t.Error("QuitOnEscape should default to false")
	}
	if cfg.Attribute != "position" || cfg.AttributeType != "vec3" {
		t.Errorf("attribute = %s %s, want position vec3", cfg.Attribute, cfg.AttributeType)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestNewConfigOptions(t *testing.T) {
	red := gputypes.Color{R: 1, A: 1}
	cfg, err := NewConfig(
		WithTitle("HEXAGONO"),
		WithSize(640, 480),
		WithClearColor(red),
		WithFillColor(Gray),
		WithQuitOnEscape(true),
		WithAttribute("pos", "vec2"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Title != "HEXAGONO" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ClearColor != red || cfg.FillColor != Gray {
		t.Errorf("colors = %+v / %+v", cfg.ClearColor, cfg.FillColor)
	}
	if !cfg.QuitOnEscape {
		t.Error("QuitOnEscape not applied")
	}
	if cfg.Attribute != "pos" || cfg.AttributeType != "vec2" {
		t.Errorf("attribute = %s %s", cfg.Attribute, cfg.AttributeType)
	}
}

func TestNewConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"zero width", WithSize(0, 400), ErrInvalidSize},
		{"negative height", WithSize(400, -1), ErrInvalidSize},
		{"empty attribute", WithAttribute("", "vec3"), ErrEmptyAttribute},
		{"empty type", WithAttribute("position", ""), ErrEmptyAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opt)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewConfig error = %v, want %v", err, tt.want)
			}
		})
	}
}
