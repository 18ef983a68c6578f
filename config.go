package shapedemo

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Default window and shader settings.
const (
	DefaultWidth         = 400
	DefaultHeight        = 400
	DefaultAttribute     = "position"
	DefaultAttributeType = "vec3"
)

var (
	// ErrInvalidSize is returned when the window width or height is not positive.
	ErrInvalidSize = errors.New("shapedemo: invalid window size")

	// ErrEmptyAttribute is returned when the vertex attribute name or type is empty.
	ErrEmptyAttribute = errors.New("shapedemo: empty vertex attribute")
)

// Gray is the default clear color.
var Gray = gputypes.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}

// Yellow is the default fill color.
var Yellow = gputypes.Color{R: 1, G: 1, B: 0, A: 1}

// Config describes how a shape is presented.
type Config struct {
	Title  string
	Width  int
	Height int

	// ClearColor fills the frame before the shape is drawn.
	ClearColor gputypes.Color
	// FillColor is the solid color output by the fragment stage.
	FillColor gputypes.Color

	// QuitOnEscape closes the window when Escape is pressed.
	QuitOnEscape bool

	// Attribute is the vertex shader input fed from the vertex buffer and
	// AttributeType its type tag (int, float, vec2, vec3, vec4).
	Attribute     string
	AttributeType string
}

// DefaultConfig returns a 400x400 gray window drawing in yellow.
func DefaultConfig() Config {
	return Config{
		Title:         "shapedemo",
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		ClearColor:    Gray,
		FillColor:     Yellow,
		Attribute:     DefaultAttribute,
		AttributeType: DefaultAttributeType,
	}
}

// Option configures a Config.
//
// Example:
//
//	cfg, err := shapedemo.NewConfig(
//	    shapedemo.WithTitle("HEXAGONO"),
//	    shapedemo.WithQuitOnEscape(true),
//	)
type Option func(*Config)

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(c *Config) { c.Title = title }
}

// WithSize sets the initial window size in pixels.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClearColor sets the background color.
func WithClearColor(col gputypes.Color) Option {
	return func(c *Config) { c.ClearColor = col }
}

// WithFillColor sets the shape color.
func WithFillColor(col gputypes.Color) Option {
	return func(c *Config) { c.FillColor = col }
}

// WithQuitOnEscape enables closing the window with the Escape key.
func WithQuitOnEscape(quit bool) Option {
	return func(c *Config) { c.QuitOnEscape = quit }
}

// WithAttribute sets the vertex shader input name and its type tag.
func WithAttribute(name, typeTag string) Option {
	return func(c *Config) {
		c.Attribute = name
		c.AttributeType = typeTag
	}
}

// NewConfig applies opts to DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config for values that cannot be rendered.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.Attribute == "" || c.AttributeType == "" {
		return ErrEmptyAttribute
	}
	return nil
}
