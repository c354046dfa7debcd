package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/hpgl2svg"
	"github.com/aretw0/hpgl2svg/internal/config"
	"github.com/aretw0/hpgl2svg/internal/presentation/pdf"
	"github.com/aretw0/hpgl2svg/internal/presentation/raster"
	"github.com/aretw0/hpgl2svg/internal/presentation/svg"
	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/ports"
)

// SinkFactory builds the sink for one document.
type SinkFactory func(format config.Format, w io.Writer) (ports.Sink, error)

// NewSinkFactory returns a factory honoring the layout settings of cfg.
func NewSinkFactory(cfg config.Config) SinkFactory {
	return func(format config.Format, w io.Writer) (ports.Sink, error) {
		axes, err := domain.ParseAxes(cfg.Axes)
		if err != nil {
			return nil, err
		}

		switch format {
		case config.FormatSVG:
			wrapper, err := svg.ParseWrapper(cfg.Wrapper)
			if err != nil {
				return nil, err
			}
			return svg.NewWriter(w, svg.Options{
				Wrapper:     wrapper,
				Axes:        axes,
				StrokeWidth: cfg.StrokeWidth,
			}), nil

		case config.FormatPNG:
			opts := raster.DefaultOptions()
			opts.Axes = axes
			opts.Scale = cfg.RasterScale
			opts.StrokeWidth = float64(cfg.StrokeWidth)
			return raster.NewRenderer(w, opts), nil

		case config.FormatPDF:
			return pdf.NewDocument(w, pdf.Options{
				StrokeWidth: float64(cfg.StrokeWidth),
				Axes:        axes,
				Title:       "hpgl2svg",
			}), nil
		}
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// createConverter initializes a Converter with standard CLI conventions.
func createConverter(cfg config.Config, logger *slog.Logger, debug bool, extra domain.LifecycleHooks) (*hpgl2svg.Converter, error) {
	palette, err := cfg.PenPalette()
	if err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}

	mode := hpgl2svg.StrictErrorMode
	if cfg.Lenient {
		mode = hpgl2svg.WarnErrorMode
	}

	hooks := extra
	if debug {
		hooks = createDebugHooks(logger).Merge(extra)
	}

	return hpgl2svg.New(
		hpgl2svg.WithLogger(logger),
		hpgl2svg.WithLifecycleHooks(hooks),
		hpgl2svg.WithCanvas(cfg.Canvas.Rect()),
		hpgl2svg.WithErrorMode(mode),
		hpgl2svg.WithCharset(cfg.Charset),
		hpgl2svg.WithPalette(palette),
	), nil
}

// NewConverter is createConverter for adapters outside the CLI.
func NewConverter(cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*hpgl2svg.Converter, error) {
	return createConverter(cfg, logger, false, hooks)
}

// NewNamedSinkFactory adapts NewSinkFactory to format names, as used by the network adapters.
// It also reports the content type of the document.
func NewNamedSinkFactory(cfg config.Config) func(name string, w io.Writer) (ports.Sink, string, error) {
	build := NewSinkFactory(cfg)
	return func(name string, w io.Writer) (ports.Sink, string, error) {
		format, err := config.ParseFormat(name)
		if err != nil {
			return nil, "", err
		}
		wrapper, err := svg.ParseWrapper(cfg.Wrapper)
		if err != nil {
			return nil, "", err
		}
		sink, err := build(format, w)
		if err != nil {
			return nil, "", err
		}
		return sink, format.ContentType(wrapper), nil
	}
}
