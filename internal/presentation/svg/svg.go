package svg

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/ports"
)

// Wrapper selects the outer markup of the document.
type Wrapper string

const (
	// WrapperHTML embeds the drawing in a bare HTML page.
	WrapperHTML Wrapper = "html"
	// WrapperSVG produces a standalone SVG file.
	WrapperSVG Wrapper = "svg"
)

// DefaultStrokeWidth is the line width in plotter units.
const DefaultStrokeWidth = 10

var errNotStarted = errors.New("svg: document not started")

// ParseWrapper validates a wrapper name. The empty string means WrapperHTML.
func ParseWrapper(name string) (Wrapper, error) {
	switch Wrapper(name) {
	case "", WrapperHTML:
		return WrapperHTML, nil
	case WrapperSVG:
		return WrapperSVG, nil
	}
	return "", fmt.Errorf("unknown wrapper %q (expected %q or %q)", name, WrapperHTML, WrapperSVG)
}

// Options controls the markup produced by a Writer.
type Options struct {
	Wrapper     Wrapper
	Axes        domain.Axes
	StrokeWidth int
}

// DefaultOptions returns the HTML wrapper, untransposed axes and a 10 unit stroke.
func DefaultOptions() Options {
	return Options{Wrapper: WrapperHTML, Axes: domain.AxesXY, StrokeWidth: DefaultStrokeWidth}
}

// Writer renders segments as <line> elements.
// The document is buffered and written to the destination on End.
type Writer struct {
	out     io.Writer
	opts    Options
	sb      strings.Builder
	started bool
}

var _ ports.Sink = (*Writer)(nil)

// NewWriter creates a sink writing the finished document to w.
func NewWriter(w io.Writer, opts Options) *Writer {
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = DefaultStrokeWidth
	}
	if opts.Wrapper == "" {
		opts.Wrapper = WrapperHTML
	}
	return &Writer{out: w, opts: opts}
}

// Begin opens the document with a viewBox matching bounds.
func (s *Writer) Begin(bounds domain.Rect) error {
	if bounds.Empty() {
		return fmt.Errorf("svg: empty canvas %dx%d", bounds.Width, bounds.Height)
	}
	s.sb.Reset()
	s.started = true

	viewBox := fmt.Sprintf("%d %d %d %d", bounds.X, bounds.Y, bounds.Width, bounds.Height)
	switch s.opts.Wrapper {
	case WrapperSVG:
		s.sb.WriteString("<?xml version='1.0' encoding='UTF-8'?>\n")
		fmt.Fprintf(&s.sb, "<svg xmlns='http://www.w3.org/2000/svg' viewBox='%s'>\n", viewBox)
	default:
		fmt.Fprintf(&s.sb, "<html><body><svg viewBox='%s'>\n", viewBox)
	}
	return nil
}

// DrawSegment appends one line element.
func (s *Writer) DrawSegment(seg domain.DrawRequest) error {
	if !s.started {
		return errNotStarted
	}
	from, to := s.opts.Axes.Apply(seg.From), s.opts.Axes.Apply(seg.To)
	fmt.Fprintf(&s.sb, "<line x1='%d' y1='%d' x2='%d' y2='%d' style='stroke:%s;stroke-width:%d'/>\n",
		from.X, from.Y, to.X, to.Y, html.EscapeString(seg.Color), s.opts.StrokeWidth)
	return nil
}

// End closes the document and writes it out.
func (s *Writer) End() error {
	if !s.started {
		return errNotStarted
	}
	switch s.opts.Wrapper {
	case WrapperSVG:
		s.sb.WriteString("</svg>\n")
	default:
		s.sb.WriteString("</svg></body></html>\n")
	}
	s.started = false

	if _, err := io.WriteString(s.out, s.sb.String()); err != nil {
		return fmt.Errorf("svg: failed to write document: %w", err)
	}
	return nil
}
