package ports

import (
	"context"

	"github.com/aretw0/hpgl2svg/pkg/domain"
)

// Interpreter replays a command sequence and drives a Sink.
type Interpreter interface {
	// Run applies every command in order and returns the final plotter state.
	Run(ctx context.Context, commands []domain.Command) (*domain.State, error)
}
