package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/hpgl2svg/internal/config"
)

// ConvertOptions contains the configuration of the convert command.
// Empty string fields keep the value from the config file.
type ConvertOptions struct {
	Input      string
	Output     string
	ConfigPath string
	Format     string
	Axes       string
	Wrapper    string
	Charset    string
	Lenient    bool
	Debug      bool
}

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(path string, overrides func(*config.Config)) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	overrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (o ConvertOptions) apply(cfg *config.Config) {
	if o.Format != "" {
		cfg.Format = o.Format
	}
	if o.Axes != "" {
		cfg.Axes = o.Axes
	}
	if o.Wrapper != "" {
		cfg.Wrapper = o.Wrapper
	}
	if o.Charset != "" {
		cfg.Charset = o.Charset
	}
	if o.Lenient {
		cfg.Lenient = true
	}
}

// Convert renders the input document and writes it to Output, or stdout.
// Nothing is written unless the whole conversion succeeds.
func Convert(ctx context.Context, opts ConvertOptions, stdin io.Reader, stdout io.Writer) error {
	cfg, err := resolveConfig(opts.ConfigPath, opts.apply)
	if err != nil {
		return err
	}
	format, err := config.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if opts.Output == "" && format.Binary() && isTerminal(stdout) {
		return fmt.Errorf("refusing to write %s to a terminal, use --output", format)
	}

	logger := CreateLogger(opts.Debug)

	in, err := openInput(opts.Input, stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	var doc bytes.Buffer
	sink, err := NewSinkFactory(cfg)(format, &doc)
	if err != nil {
		return err
	}

	conv, err := createConverter(cfg, logger, opts.Debug, noHooks)
	if err != nil {
		return err
	}
	summary, err := conv.Convert(ctx, in, sink)
	if err != nil {
		return err
	}
	logger.Debug("Converted", "segments", summary.Segments, "format", format, "bytes", doc.Len())

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, doc.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if _, err := doc.WriteTo(stdout); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
