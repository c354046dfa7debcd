// Package config loads converter settings from YAML or JSON files.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/hpgl2svg/internal/presentation/svg"
	"github.com/aretw0/hpgl2svg/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read from the working directory when no file is given.
const DefaultPath = "hpgl2svg.yaml"

// Default canvas, in plotter units.
const (
	DefaultCanvasWidth  = 7650
	DefaultCanvasHeight = 10300
)

// Format names an output backend.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat validates a format name. The empty string means FormatSVG.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case "", FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown format %q (expected svg, png or pdf)", name)
}

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool {
	return f == FormatPNG || f == FormatPDF
}

// ContentType returns the MIME type of documents in this format.
func (f Format) ContentType(wrapper svg.Wrapper) string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	}
	if wrapper == svg.WrapperSVG {
		return "image/svg+xml"
	}
	return "text/html; charset=utf-8"
}

// Canvas is the drawing area in plotter units.
type Canvas struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Rect returns the canvas anchored at the origin.
func (c Canvas) Rect() domain.Rect {
	return domain.Rect{Width: c.Width, Height: c.Height}
}

// Config represents the structure of hpgl2svg.yaml.
type Config struct {
	Canvas      Canvas  `yaml:"canvas" json:"canvas"`
	StrokeWidth int     `yaml:"stroke_width" json:"stroke_width"`
	Wrapper     string  `yaml:"wrapper" json:"wrapper"`
	Axes        string  `yaml:"axes" json:"axes"`
	Format      string  `yaml:"format" json:"format"`
	RasterScale float64 `yaml:"raster_scale" json:"raster_scale"`
	Charset     string  `yaml:"charset" json:"charset"`
	Lenient     bool    `yaml:"lenient" json:"lenient"`

	// Palette recolors pens 1..8 over the default table.
	Palette map[uint8]string `yaml:"palette,omitempty" json:"palette,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Canvas:      Canvas{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
		StrokeWidth: svg.DefaultStrokeWidth,
		Wrapper:     string(svg.WrapperHTML),
		Axes:        string(domain.AxesXY),
		Format:      string(FormatSVG),
		RasterScale: 0.1,
	}
}

// Load reads path over the defaults. An empty path reads DefaultPath,
// which may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := decode(path, data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// decode parses data by file extension, rejecting unknown keys.
func decode(path string, data []byte, cfg *Config) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// PenPalette returns the default color table with Palette applied.
func (c Config) PenPalette() (domain.Palette, error) {
	return domain.DefaultPalette().With(c.Palette)
}

// Validate rejects impossible sizes and unknown names.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.StrokeWidth <= 0 {
		errs = append(errs, fmt.Errorf("stroke_width must be positive, got %d", c.StrokeWidth))
	}
	if c.RasterScale <= 0 {
		errs = append(errs, fmt.Errorf("raster_scale must be positive, got %v", c.RasterScale))
	}
	if _, err := svg.ParseWrapper(c.Wrapper); err != nil {
		errs = append(errs, err)
	}
	if _, err := domain.ParseAxes(c.Axes); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.PenPalette(); err != nil {
		errs = append(errs, fmt.Errorf("palette: %w", err))
	}
	return errors.Join(errs...)
}
