package domain

import "fmt"

// Point is a 2D coordinate in plotter units.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by delta.
func (p Point) Add(delta Point) Point {
	return Point{X: p.X + delta.X, Y: p.Y + delta.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis aligned rectangle in plotter units.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// DrawRequest is a single segment handed to a renderer sink.
type DrawRequest struct {
	From  Point  `json:"from"`
	To    Point  `json:"to"`
	Color string `json:"color"`
}
