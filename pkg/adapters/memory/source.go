package memory

import (
	"io"

	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/ports"
)

// Source implements ports.CommandSource over a fixed command sequence.
// The reader handed to Parse is ignored.
type Source struct {
	commands []domain.Command
}

var _ ports.CommandSource = (*Source)(nil)

// NewSource creates a Source replaying commands.
func NewSource(commands ...domain.Command) *Source {
	return &Source{commands: append([]domain.Command(nil), commands...)}
}

// Parse returns a copy of the commands.
func (s *Source) Parse(io.Reader) ([]domain.Command, error) {
	return append([]domain.Command{}, s.commands...), nil
}

// Len returns the number of commands.
func (s *Source) Len() int {
	return len(s.commands)
}
