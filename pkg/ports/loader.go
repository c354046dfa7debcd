package ports

import (
	"io"

	"github.com/aretw0/hpgl2svg/pkg/domain"
)

// CommandSource produces an ordered, finite sequence of commands from raw input.
// Malformed input is rejected here; the interpreter never sees it.
type CommandSource interface {
	Parse(r io.Reader) ([]domain.Command, error)
}
