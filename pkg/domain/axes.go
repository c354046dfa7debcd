package domain

import "fmt"

// Axes is the convention a sink uses to map plotter coordinates to image coordinates.
type Axes string

const (
	// AxesXY keeps plotter x as image x and plotter y as image y.
	AxesXY Axes = "xy"
	// AxesYX transposes the plot: plotter y becomes image x.
	// Older converters produced this layout for portrait pages.
	AxesYX Axes = "yx"
)

// ParseAxes validates an axis convention name. The empty string means AxesXY.
func ParseAxes(name string) (Axes, error) {
	switch Axes(name) {
	case "", AxesXY:
		return AxesXY, nil
	case AxesYX:
		return AxesYX, nil
	}
	return "", fmt.Errorf("unknown axis convention %q (expected %q or %q)", name, AxesXY, AxesYX)
}

// Apply maps a plotter point to image coordinates.
func (a Axes) Apply(p Point) Point {
	if a == AxesYX {
		return Point{X: p.Y, Y: p.X}
	}
	return p
}
