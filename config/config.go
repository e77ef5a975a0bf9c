// Package config loads viewer settings from YAML files and validates them.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/go-errors/errors"
	"gopkg.in/yaml.v3"

	mandel "github.com/marben/live_mandel"
	"github.com/marben/live_mandel/escape"
	"github.com/marben/live_mandel/render"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = stderrors.New("invalid config")

// MaxFPS caps the websocket frame rate.
const MaxFPS = 1000

// Config holds everything the viewers need besides the viewport itself.
type Config struct {
	MaxIter         int     `yaml:"max_iter"`
	WindowSpan      float64 `yaml:"window_span"`
	EscapeThreshold float64 `yaml:"escape_threshold"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Workers is the render pool size, 0 for GOMAXPROCS.
	Workers int `yaml:"workers"`
	// TileWidth of 0 renders full rows.
	TileWidth  int `yaml:"tile_width"`
	TileHeight int `yaml:"tile_height"`

	// Preset names a landmark from mandel.Presets, or "home".
	// When empty the Scale and Offset fields are used.
	Preset  string  `yaml:"preset"`
	Scale   float64 `yaml:"scale"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`

	Addr     string `yaml:"addr"`
	FPS      int    `yaml:"fps"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxIter:         render.DefaultMaxIter,
		WindowSpan:      render.DefaultWindowSpan,
		EscapeThreshold: escape.DefaultThreshold,
		Width:           800,
		Height:          600,
		Workers:         runtime.GOMAXPROCS(0),
		TileHeight:      1,
		Scale:           1,
		Addr:            ":8080",
		FPS:             30,
		LogLevel:        "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WrapPrefix(err, "read config", 0)
	}
	if err := cfg.decode(bytes.NewReader(b)); err != nil {
		return cfg, errors.WrapPrefix(err, "parse "+path, 0)
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Validate checks every field the renderer and viewers depend on.
func (c Config) Validate() error {
	switch {
	case c.MaxIter <= 0:
		return invalid("max_iter must be positive, got %d", c.MaxIter)
	case !(c.WindowSpan > 0):
		return invalid("window_span must be positive, got %v", c.WindowSpan)
	case !(c.EscapeThreshold > 0):
		return invalid("escape_threshold must be positive, got %v", c.EscapeThreshold)
	case c.Width <= 0 || c.Height <= 0:
		return invalid("frame size must be positive, got %dx%d", c.Width, c.Height)
	case c.Workers < 0:
		return invalid("workers must not be negative, got %d", c.Workers)
	case c.TileWidth < 0 || c.TileHeight <= 0:
		return invalid("tile size must be positive, got %dx%d", c.TileWidth, c.TileHeight)
	case c.FPS <= 0 || c.FPS > MaxFPS:
		return invalid("fps must be in [1, %d], got %d", MaxFPS, c.FPS)
	case c.Preset == "" && !(c.Scale > 0):
		return invalid("scale must be positive, got %v", c.Scale)
	}
	if c.Preset != "" && c.Preset != "home" {
		if _, ok := mandel.Presets[c.Preset]; !ok {
			return invalid("unknown preset %q (known: %s)", c.Preset, strings.Join(PresetNames(), ", "))
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func invalid(format string, a ...any) error {
	return errors.Wrap(fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, a...)), 1)
}

// Viewport is the starting view.
func (c Config) Viewport() mandel.Viewport {
	switch c.Preset {
	case "":
		return mandel.Viewport{Scale: c.Scale, OffsetX: c.OffsetX, OffsetY: c.OffsetY}
	case "home":
		return mandel.Home
	}
	return mandel.Presets[c.Preset].Viewport(c.WindowSpan)
}

// Dims is the configured frame size.
func (c Config) Dims() mandel.Dims {
	return mandel.Dims{Width: c.Width, Height: c.Height}
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, invalid("log_level: %v", err)
	}
	return l, nil
}

// CompositorOptions translates the render settings into compositor options.
// The executor is left to the caller.
func (c Config) CompositorOptions() []render.Option {
	return []render.Option{
		render.WithWindowSpan(c.WindowSpan),
		render.WithThreshold(c.EscapeThreshold),
		render.WithTileSize(c.TileWidth, c.TileHeight),
	}
}

// PresetNames lists the accepted preset names in sorted order.
func PresetNames() []string {
	names := []string{"home"}
	for name := range mandel.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
