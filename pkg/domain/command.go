package domain

import (
	"fmt"
	"strings"
)

// CommandKind identifies a command variant.
type CommandKind string

const (
	KindInitialize   CommandKind = "IN"
	KindSelectPen    CommandKind = "SP"
	KindPenUp        CommandKind = "PU"
	KindPenDown      CommandKind = "PD"
	KindPlotAbsolute CommandKind = "PA"
	KindPlotRelative CommandKind = "PR"
)

// Command is one plotter instruction.
// The set of implementations is closed: only the types of this package satisfy it.
type Command interface {
	Kind() CommandKind
	String() string
	command()
}

// Initialize resets the plotter. It carries no state change.
type Initialize struct{}

// SelectPen makes Pen the active color index.
type SelectPen struct {
	Pen uint8
}

// PenUp lifts the pen and travels through Points.
type PenUp struct {
	Points []Point
}

// PenDown lowers the pen and travels through Points.
type PenDown struct {
	Points []Point
}

// PlotAbsolute travels through Points without touching the pen.
type PlotAbsolute struct {
	Points []Point
}

// PlotRelative travels through Points, each one a delta from the previous position.
type PlotRelative struct {
	Points []Point
}

func (Initialize) command()   {}
func (SelectPen) command()    {}
func (PenUp) command()        {}
func (PenDown) command()      {}
func (PlotAbsolute) command() {}
func (PlotRelative) command() {}

func (Initialize) Kind() CommandKind   { return KindInitialize }
func (SelectPen) Kind() CommandKind    { return KindSelectPen }
func (PenUp) Kind() CommandKind        { return KindPenUp }
func (PenDown) Kind() CommandKind      { return KindPenDown }
func (PlotAbsolute) Kind() CommandKind { return KindPlotAbsolute }
func (PlotRelative) Kind() CommandKind { return KindPlotRelative }

func (Initialize) String() string { return "IN;" }

func (c SelectPen) String() string { return fmt.Sprintf("SP%d;", c.Pen) }

func (c PenUp) String() string        { return formatPoints(KindPenUp, c.Points) }
func (c PenDown) String() string      { return formatPoints(KindPenDown, c.Points) }
func (c PlotAbsolute) String() string { return formatPoints(KindPlotAbsolute, c.Points) }
func (c PlotRelative) String() string { return formatPoints(KindPlotRelative, c.Points) }

// formatPoints renders a command back into HPGL syntax.
func formatPoints(kind CommandKind, points []Point) string {
	var sb strings.Builder
	sb.WriteString(string(kind))
	for i, p := range points {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d,%d", p.X, p.Y)
	}
	sb.WriteByte(';')
	return sb.String()
}
