package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/hpgl2svg/internal/logging"
	"github.com/aretw0/hpgl2svg/pkg/domain"
	"golang.org/x/term"
)

// StdinName is the input argument that reads standard input.
const StdinName = "-"

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the application logger.
// Logs always go to Stderr so that documents on Stdout stay clean.
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelWarn)
}

// CreateServerLogger builds the logger of long running commands.
// debug forces the debug level regardless of level.
func CreateServerLogger(level string, json, debug bool) (*slog.Logger, error) {
	if debug {
		level = "debug"
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, lvl, json), nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommand: func(ctx context.Context, e *domain.CommandEvent) {
			logger.Debug("Command", "index", e.Index, "kind", e.Kind, "position", e.State.Position.String(), "pen_down", e.State.PenDown)
		},
		OnSegment: func(ctx context.Context, e *domain.SegmentEvent) {
			logger.Debug("Segment", "index", e.Index, "from", e.Segment.From.String(), "to", e.Segment.To.String(), "color", e.Segment.Color)
		},
		OnPenChange: func(ctx context.Context, e *domain.PenEvent) {
			logger.Debug("Pen Change", "index", e.Index, "from", e.From, "to", e.To, "color", e.Color)
		},
	}
}

// openInput resolves a file argument. StdinName and "" read stdin.
func openInput(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == "" || name == StdinName {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
