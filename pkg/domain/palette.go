package domain

import (
	"errors"
	"fmt"
	"strings"
)

// NoInk is the reserved pen index that never draws.
const NoInk uint8 = 0

// MaxPen is the highest pen index of the color table.
const MaxPen uint8 = 8

// Palette maps pen indexes to color names.
type Palette struct {
	names map[uint8]string
}

// DefaultPalette returns the plotter color table.
func DefaultPalette() Palette {
	return Palette{names: map[uint8]string{
		1: "black",
		2: "red",
		3: "blue",
		4: "green",
		5: "yellow",
		6: "orange",
		7: "brown",
		8: "pink",
	}}
}

// NewPalette builds a color table from pen to color name.
// Pens must be in 1..MaxPen and names must not be blank. Pens left out are unknown.
func NewPalette(names map[uint8]string) (Palette, error) {
	var errs []error
	table := make(map[uint8]string, len(names))
	for pen, name := range names {
		name = strings.TrimSpace(name)
		switch {
		case pen == NoInk:
			errs = append(errs, fmt.Errorf("pen %d is reserved for no ink", pen))
		case pen > MaxPen:
			errs = append(errs, fmt.Errorf("pen %d is outside 1..%d", pen, MaxPen))
		case name == "":
			errs = append(errs, fmt.Errorf("pen %d has no color name", pen))
		default:
			table[pen] = name
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Palette{}, err
	}
	return Palette{names: table}, nil
}

// With returns a copy of p with the given pens recolored.
func (p Palette) With(overrides map[uint8]string) (Palette, error) {
	merged := make(map[uint8]string, len(p.names)+len(overrides))
	for pen, name := range p.names {
		merged[pen] = name
	}
	for pen, name := range overrides {
		merged[pen] = name
	}
	return NewPalette(merged)
}

// Valid reports whether pen belongs to the table, pen 0 included.
func (p Palette) Valid(pen uint8) bool {
	if pen == NoInk {
		return true
	}
	_, ok := p.names[pen]
	return ok
}

// Lookup resolves the color name of pen.
func (p Palette) Lookup(pen uint8) (string, error) {
	if pen == NoInk {
		return "", ErrNoInk
	}
	name, ok := p.names[pen]
	if !ok {
		return "", &UnknownColorIndexError{Pen: pen}
	}
	return name, nil
}

// Colors returns the color names in pen order, starting at pen 1.
func (p Palette) Colors() []string {
	out := make([]string, 0, len(p.names))
	for pen := uint8(1); pen <= MaxPen; pen++ {
		if name, ok := p.names[pen]; ok {
			out = append(out, name)
		}
	}
	return out
}
