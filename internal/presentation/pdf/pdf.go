// Package pdf renders plots as single page PDF documents with gofpdf.
package pdf

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/ports"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/colornames"
)

// MillimetersPerUnit is the physical size of one plotter unit.
const MillimetersPerUnit = 0.025

var errNotStarted = errors.New("pdf: document not started")

// Options controls the page layout.
type Options struct {
	StrokeWidth float64 // in plotter units
	Axes        domain.Axes
	Title       string
}

// DefaultOptions returns a 10 unit stroke with untransposed axes.
func DefaultOptions() Options {
	return Options{StrokeWidth: 10, Axes: domain.AxesXY}
}

// Document draws each segment as a PDF line on a page sized to the canvas.
type Document struct {
	out    io.Writer
	opts   Options
	bounds domain.Rect
	pdf    *gofpdf.Fpdf
}

var _ ports.Sink = (*Document)(nil)

// NewDocument returns a sink writing the PDF to w on End.
func NewDocument(w io.Writer, opts Options) *Document {
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 10
	}
	return &Document{out: w, opts: opts}
}

// Begin creates the page.
func (d *Document) Begin(bounds domain.Rect) error {
	if bounds.Empty() {
		return fmt.Errorf("pdf: empty canvas %dx%d", bounds.Width, bounds.Height)
	}
	d.bounds = bounds
	d.pdf = gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size: gofpdf.SizeType{
			Wd: mm(bounds.Width),
			Ht: mm(bounds.Height),
		},
	})
	if d.opts.Title != "" {
		d.pdf.SetTitle(d.opts.Title, true)
	}
	d.pdf.SetCreator("hpgl2svg", true)
	d.pdf.AddPage()
	d.pdf.SetLineWidth(d.opts.StrokeWidth * MillimetersPerUnit)
	d.pdf.SetLineCapStyle("round")
	return d.pdf.Error()
}

// DrawSegment adds one line in the segment color.
func (d *Document) DrawSegment(seg domain.DrawRequest) error {
	if d.pdf == nil {
		return errNotStarted
	}
	c, ok := colornames.Map[seg.Color]
	if !ok {
		return fmt.Errorf("pdf: unknown color %q", seg.Color)
	}
	from, to := d.place(seg.From), d.place(seg.To)

	d.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	d.pdf.Line(from.x, from.y, to.x, to.y)
	return d.pdf.Error()
}

// End serializes the document.
func (d *Document) End() error {
	if d.pdf == nil {
		return errNotStarted
	}
	doc := d.pdf
	d.pdf = nil
	if err := doc.Output(d.out); err != nil {
		return fmt.Errorf("pdf: failed to write document: %w", err)
	}
	return nil
}

type pagePoint struct{ x, y float64 }

func (d *Document) place(p domain.Point) pagePoint {
	p = d.opts.Axes.Apply(p)
	return pagePoint{x: mm(p.X - d.bounds.X), y: mm(p.Y - d.bounds.Y)}
}

func mm(units int) float64 {
	return float64(units) * MillimetersPerUnit
}
