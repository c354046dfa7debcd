package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aretw0/hpgl2svg/internal/config"
	"github.com/aretw0/hpgl2svg/internal/presentation/tui"
	"github.com/aretw0/hpgl2svg/pkg/domain"
)

// noHooks is the empty hook set.
var noHooks domain.LifecycleHooks

// InspectOptions contains the configuration of the inspect command.
type InspectOptions struct {
	Input      string
	ConfigPath string
	Charset    string
	Lenient    bool
	JSON       bool
	Debug      bool
}

// Inspect interprets the input and prints a report of what it draws.
// Terminals get a styled report, pipes get plain markdown.
func Inspect(ctx context.Context, opts InspectOptions, stdin io.Reader, stdout io.Writer) error {
	cfg, err := resolveConfig(opts.ConfigPath, func(c *config.Config) {
		if opts.Charset != "" {
			c.Charset = opts.Charset
		}
		if opts.Lenient {
			c.Lenient = true
		}
	})
	if err != nil {
		return err
	}

	logger := CreateLogger(opts.Debug)

	in, err := openInput(opts.Input, stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	conv, err := createConverter(cfg, logger, opts.Debug, noHooks)
	if err != nil {
		return err
	}
	summary, err := conv.Inspect(ctx, in)
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	name := ""
	if opts.Input != "" && opts.Input != StdinName {
		name = filepath.Base(opts.Input)
	}
	report := tui.Report(name, summary)

	if isTerminal(stdout) {
		rendered, err := tui.NewRenderer()(report)
		if err == nil {
			report = rendered
		} else {
			logger.Warn("Falling back to plain report", "err", err)
		}
	}
	_, err = fmt.Fprint(stdout, report)
	return err
}
