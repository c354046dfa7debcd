package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/ports"
)

// Engine is the plotter interpreter.
// It keeps no state between runs: each Run starts from domain.NewState().
type Engine struct {
	sink    ports.Sink
	palette domain.Palette
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

var _ ports.Interpreter = (*Engine)(nil)

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPalette replaces the pen color table.
func WithPalette(p domain.Palette) EngineOption {
	return func(e *Engine) {
		e.palette = p
	}
}

// NewEngine creates an interpreter drawing into sink.
func NewEngine(sink ports.Sink, opts ...EngineOption) *Engine {
	e := &Engine{
		sink:    sink,
		palette: domain.DefaultPalette(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run replays commands in order and returns the final plotter state.
// The first error aborts the run; the returned state is the one reached so far.
func (e *Engine) Run(ctx context.Context, commands []domain.Command) (*domain.State, error) {
	state := domain.NewState()

	for i, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return state, err
		}
		e.emitCommand(ctx, i, cmd, state)

		if err := e.apply(ctx, i, state, cmd); err != nil {
			e.logger.Debug("run aborted", "index", i, "command", cmd.String(), "err", err)
			return state, fmt.Errorf("command %d (%s): %w", i, cmd.Kind(), err)
		}
	}

	e.logger.Debug("run finished", "commands", len(commands), "position", state.Position.String(), "pen", state.Pen)
	return state, nil
}

func (e *Engine) emitCommand(ctx context.Context, index int, cmd domain.Command, state *domain.State) {
	if e.hooks.OnCommand == nil {
		return
	}
	e.hooks.OnCommand(ctx, &domain.CommandEvent{
		EventBase: newEvent(domain.EventCommand, index),
		Kind:      cmd.Kind(),
		Command:   cmd,
		State:     *state,
	})
}
