// Package raster implements a PNG backend by wrapping rasterx.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/ports"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/fixed"
)

// DefaultScale turns a 7650x10300 unit canvas into a 765x1030 pixel image.
const DefaultScale = 0.1

// maxPixels bounds the image allocation.
const maxPixels = 64 << 20

var errNotStarted = errors.New("raster: image not started")

// Options controls the rasterization.
type Options struct {
	Scale       float64 // pixels per plotter unit
	StrokeWidth float64 // in plotter units
	Axes        domain.Axes
	Background  color.Color
}

// DefaultOptions returns a white background at DefaultScale.
func DefaultOptions() Options {
	return Options{
		Scale:       DefaultScale,
		StrokeWidth: 10,
		Axes:        domain.AxesXY,
		Background:  color.White,
	}
}

// Renderer rasterizes segments into an RGBA image and encodes it as PNG on End.
type Renderer struct {
	out    io.Writer
	opts   Options
	bounds domain.Rect
	img    *image.RGBA
	dasher *rasterx.Dasher
}

var _ ports.Sink = (*Renderer)(nil)

// NewRenderer returns a renderer writing the PNG to w.
func NewRenderer(w io.Writer, opts Options) *Renderer {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 10
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	return &Renderer{out: w, opts: opts}
}

// Begin allocates the image for bounds.
func (r *Renderer) Begin(bounds domain.Rect) error {
	if bounds.Empty() {
		return fmt.Errorf("raster: empty canvas %dx%d", bounds.Width, bounds.Height)
	}
	w := int(math.Ceil(float64(bounds.Width) * r.opts.Scale))
	h := int(math.Ceil(float64(bounds.Height) * r.opts.Scale))
	if w <= 0 || h <= 0 || w*h > maxPixels {
		return fmt.Errorf("raster: %dx%d pixels is outside the supported image size", w, h)
	}

	r.bounds = bounds
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.opts.Background), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, r.img, r.img.Bounds())
	r.dasher = rasterx.NewDasher(w, h, scanner)
	return nil
}

// DrawSegment strokes one line with round caps.
func (r *Renderer) DrawSegment(seg domain.DrawRequest) error {
	if r.img == nil {
		return errNotStarted
	}
	c, ok := colornames.Map[seg.Color]
	if !ok {
		return fmt.Errorf("raster: unknown color %q", seg.Color)
	}

	width := fixed.Int26_6(math.Max(r.opts.StrokeWidth*r.opts.Scale, 1) * 64)
	r.dasher.Clear()
	r.dasher.SetStroke(width, 4<<6, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	r.dasher.SetColor(c)
	r.dasher.Start(r.toFixed(seg.From))
	r.dasher.Line(r.toFixed(seg.To))
	r.dasher.Stop(false)
	r.dasher.Draw()
	return nil
}

// End encodes the image.
func (r *Renderer) End() error {
	if r.img == nil {
		return errNotStarted
	}
	img := r.img
	r.img, r.dasher = nil, nil
	if err := png.Encode(r.out, img); err != nil {
		return fmt.Errorf("raster: failed to encode png: %w", err)
	}
	return nil
}

// Image exposes the canvas while a document is open.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

// toFixed maps a plotter point to 26.6 fixed point pixels.
func (r *Renderer) toFixed(p domain.Point) fixed.Point26_6 {
	p = r.opts.Axes.Apply(p)
	x := float64(p.X-r.bounds.X) * r.opts.Scale
	y := float64(p.Y-r.bounds.Y) * r.opts.Scale
	return fixed.Point26_6{X: toInt26_6(x), Y: toInt26_6(y)}
}

// maxOffset bounds pixel coordinates so that 26.6 values stay inside int32.
const maxOffset = 1 << 24

// toInt26_6 clamps v to ±maxOffset pixels before converting.
func toInt26_6(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(math.Max(-maxOffset, math.Min(maxOffset, v)) * 64))
}
