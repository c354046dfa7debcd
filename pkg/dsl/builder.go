package dsl

import (
	"strings"

	"github.com/aretw0/hpgl2svg/pkg/adapters/memory"
	"github.com/aretw0/hpgl2svg/pkg/domain"
)

// Builder manages the program construction.
// Every method appends to the program and returns the builder.
type Builder struct {
	commands []domain.Command
}

// New creates a new program builder.
func New() *Builder {
	return &Builder{}
}

// Init appends IN.
func (b *Builder) Init() *Builder {
	return b.add(domain.Initialize{})
}

// Pen appends SP with the given pen. Pen 0 never draws.
func (b *Builder) Pen(pen uint8) *Builder {
	return b.add(domain.SelectPen{Pen: pen})
}

// MoveTo lifts the pen and travels to (x, y).
func (b *Builder) MoveTo(x, y int) *Builder {
	return b.add(domain.PenUp{Points: []domain.Point{{X: x, Y: y}}})
}

// LineTo draws to (x, y).
// An empty PD is emitted first when the pen is up, so the point is drawn and not just reached.
func (b *Builder) LineTo(x, y int) *Builder {
	b.lower()
	return b.add(domain.PlotAbsolute{Points: []domain.Point{{X: x, Y: y}}})
}

// LineBy draws by the delta (dx, dy).
func (b *Builder) LineBy(dx, dy int) *Builder {
	b.lower()
	return b.add(domain.PlotRelative{Points: []domain.Point{{X: dx, Y: dy}}})
}

// Polyline draws through every point, starting from the current position.
func (b *Builder) Polyline(points ...domain.Point) *Builder {
	b.lower()
	return b.add(domain.PlotAbsolute{Points: append([]domain.Point(nil), points...)})
}

// Rect draws the outline of r and lifts the pen at its origin.
func (b *Builder) Rect(r domain.Rect) *Builder {
	b.MoveTo(r.X, r.Y)
	b.Polyline(
		domain.Point{X: r.X + r.Width, Y: r.Y},
		domain.Point{X: r.X + r.Width, Y: r.Y + r.Height},
		domain.Point{X: r.X, Y: r.Y + r.Height},
		domain.Point{X: r.X, Y: r.Y},
	)
	return b.Lift()
}

// Lift appends an empty PU.
func (b *Builder) Lift() *Builder {
	return b.add(domain.PenUp{Points: []domain.Point{}})
}

// Commands returns a copy of the program.
func (b *Builder) Commands() []domain.Command {
	return append([]domain.Command(nil), b.commands...)
}

// String renders the program as HPGL text.
func (b *Builder) String() string {
	var sb strings.Builder
	for _, c := range b.commands {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Build compiles the program into an in-memory command source.
func (b *Builder) Build() *memory.Source {
	return memory.NewSource(b.commands...)
}

func (b *Builder) add(c domain.Command) *Builder {
	b.commands = append(b.commands, c)
	return b
}

func (b *Builder) lower() {
	if !b.penDown() {
		b.add(domain.PenDown{Points: []domain.Point{}})
	}
}

// penDown reports the pen flag left by the last PU or PD.
func (b *Builder) penDown() bool {
	for i := len(b.commands) - 1; i >= 0; i-- {
		switch b.commands[i].(type) {
		case domain.PenDown:
			return true
		case domain.PenUp:
			return false
		}
	}
	return false
}
