package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/hpgl2svg/pkg/domain"
)

// kindOrder lists command kinds in report order.
var kindOrder = []domain.CommandKind{
	domain.KindInitialize,
	domain.KindSelectPen,
	domain.KindPenUp,
	domain.KindPenDown,
	domain.KindPlotAbsolute,
	domain.KindPlotRelative,
}

// Report builds the markdown inspection report of a conversion.
func Report(name string, s *domain.Summary) string {
	var sb strings.Builder

	if name == "" {
		name = "stdin"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "**%d** commands, **%d** segments, **%d** pen selections.\n\n",
		s.TotalCommands(), s.Segments, s.PenSelections)

	sb.WriteString("## Commands\n\n")
	sb.WriteString("| Kind | Count |\n|---|---:|\n")
	for _, k := range kindOrder {
		if n := s.Commands[k]; n > 0 {
			fmt.Fprintf(&sb, "| %s | %d |\n", k, n)
		}
	}
	sb.WriteString("\n")

	if len(s.SegmentsByColor) > 0 {
		colors := make([]string, 0, len(s.SegmentsByColor))
		for c := range s.SegmentsByColor {
			colors = append(colors, c)
		}
		sort.Strings(colors)

		sb.WriteString("## Segments by color\n\n")
		sb.WriteString("| Color | Segments |\n|---|---:|\n")
		for _, c := range colors {
			fmt.Fprintf(&sb, "| %s | %d |\n", c, s.SegmentsByColor[c])
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Extent\n\n")
	if s.Segments == 0 {
		sb.WriteString("Nothing was drawn.\n\n")
	} else {
		e := s.Extent
		fmt.Fprintf(&sb, "From `%s` to `%s` (%d x %d units).\n\n",
			domain.Point{X: e.X, Y: e.Y}, domain.Point{X: e.X + e.Width, Y: e.Y + e.Height}, e.Width, e.Height)
	}

	pen := "up"
	if s.Final.PenDown {
		pen = "down"
	}
	sb.WriteString("## Final state\n\n")
	fmt.Fprintf(&sb, "Pen %d is %s at `%s`.\n", s.Final.Pen, pen, s.Final.Position)

	return sb.String()
}
