package hpgl2svg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/hpgl2svg/internal/compiler"
	"github.com/aretw0/hpgl2svg/internal/runtime"
	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/ports"
)

// ErrInvalidInput wraps every error raised before interpretation starts.
var ErrInvalidInput = errors.New("invalid hpgl input")

// ErrorMode decides what the parser does with unsupported instructions.
type ErrorMode = compiler.ErrorMode

const (
	StrictErrorMode = compiler.StrictErrorMode
	WarnErrorMode   = compiler.WarnErrorMode
	IgnoreErrorMode = compiler.IgnoreErrorMode
)

// SyntaxError reports malformed HPGL.
type SyntaxError = compiler.SyntaxError

// DefaultCanvas is the page handed to sinks when WithCanvas is not used.
var DefaultCanvas = domain.Rect{Width: 7650, Height: 10300}

// Converter is the high-level entry point of the library.
// It is safe for concurrent use: every conversion runs on its own interpreter and state.
type Converter struct {
	source     ports.CommandSource
	canvas     domain.Rect
	palette    domain.Palette
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	errorMode  ErrorMode
	charset    string
	hasPalette bool
}

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithLifecycleHooks registers observability hooks, called for every conversion.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Converter) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithCanvas sets the bounds handed to Sink.Begin.
func WithCanvas(r domain.Rect) Option {
	return func(c *Converter) {
		c.canvas = r
	}
}

// WithErrorMode sets how the default parser handles unsupported instructions.
func WithErrorMode(mode ErrorMode) Option {
	return func(c *Converter) {
		c.errorMode = mode
	}
}

// WithCharset decodes input from the named encoding before parsing.
func WithCharset(label string) Option {
	return func(c *Converter) {
		c.charset = label
	}
}

// WithPalette replaces the pen color table, see domain.NewPalette.
func WithPalette(p domain.Palette) Option {
	return func(c *Converter) {
		c.palette = p
		c.hasPalette = true
	}
}

// WithSource injects a custom CommandSource, bypassing the HPGL parser.
func WithSource(src ports.CommandSource) Option {
	return func(c *Converter) {
		c.source = src
	}
}

// New initializes a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		canvas:  DefaultCanvas,
		palette: domain.DefaultPalette(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if c.source == nil {
		c.source = compiler.NewParser(
			compiler.WithErrorMode(c.errorMode),
			compiler.WithCharset(c.charset),
			compiler.WithLogger(c.logger),
		)
	}
	return c
}

// Canvas returns the bounds handed to sinks.
func (c *Converter) Canvas() domain.Rect {
	return c.canvas
}

// Palette returns the pen color table used by conversions.
func (c *Converter) Palette() domain.Palette {
	return c.palette
}

// Parse decodes r into commands without interpreting them.
func (c *Converter) Parse(r io.Reader) ([]domain.Command, error) {
	cmds, err := c.source.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return cmds, nil
}

// Convert parses r and renders it into sink.
// Parse errors are reported before the sink is touched.
func (c *Converter) Convert(ctx context.Context, r io.Reader, sink ports.Sink) (*domain.Summary, error) {
	cmds, err := c.Parse(r)
	if err != nil {
		return nil, err
	}
	return c.Render(ctx, cmds, sink)
}

// ConvertString is Convert over an in-memory program.
func (c *Converter) ConvertString(ctx context.Context, src string, sink ports.Sink) (*domain.Summary, error) {
	return c.Convert(ctx, strings.NewReader(src), sink)
}

// Render replays cmds into sink and summarizes the run.
// End is only called when every command succeeded; the summary covers the commands seen so far.
func (c *Converter) Render(ctx context.Context, cmds []domain.Command, sink ports.Sink) (*domain.Summary, error) {
	summary := domain.NewSummary()

	opts := []runtime.EngineOption{
		runtime.WithLogger(c.logger),
		runtime.WithLifecycleHooks(summaryHooks(summary).Merge(c.hooks)),
	}
	if c.hasPalette {
		opts = append(opts, runtime.WithPalette(c.palette))
	}
	engine := runtime.NewEngine(sink, opts...)

	if err := sink.Begin(c.canvas); err != nil {
		return summary, fmt.Errorf("failed to begin document: %w", err)
	}

	state, err := engine.Run(ctx, cmds)
	if state != nil {
		summary.Final = *state
	}
	if err != nil {
		c.logger.Debug("conversion failed", "err", err)
		return summary, err
	}

	if err := sink.End(); err != nil {
		return summary, fmt.Errorf("failed to finish document: %w", err)
	}
	c.logger.Debug("conversion finished", "commands", summary.TotalCommands(), "segments", summary.Segments)
	return summary, nil
}

// Inspect interprets r without producing a document.
func (c *Converter) Inspect(ctx context.Context, r io.Reader) (*domain.Summary, error) {
	return c.Convert(ctx, r, ports.Discard)
}

func summaryHooks(s *domain.Summary) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommand: func(_ context.Context, e *domain.CommandEvent) {
			s.Commands[e.Kind]++
			if e.Kind == domain.KindSelectPen {
				s.PenSelections++
			}
		},
		OnSegment: func(_ context.Context, e *domain.SegmentEvent) {
			s.AddSegment(e.Segment)
		},
	}
}
