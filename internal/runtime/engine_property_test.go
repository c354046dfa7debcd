package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/hpgl2svg/internal/runtime"
	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func pointGen() *rapid.Generator[domain.Point] {
	return rapid.Custom(func(t *rapid.T) domain.Point {
		return domain.Point{
			X: rapid.IntRange(-10000, 10000).Draw(t, "x"),
			Y: rapid.IntRange(-10000, 10000).Draw(t, "y"),
		}
	})
}

func pointsGen() *rapid.Generator[[]domain.Point] {
	return rapid.SliceOfN(pointGen(), 0, 6)
}

// commandGen only produces valid pens so runs never abort.
func commandGen() *rapid.Generator[domain.Command] {
	return rapid.Custom(func(t *rapid.T) domain.Command {
		switch rapid.IntRange(0, 5).Draw(t, "kind") {
		case 0:
			return domain.Initialize{}
		case 1:
			return domain.SelectPen{Pen: uint8(rapid.IntRange(0, int(domain.MaxPen)).Draw(t, "pen"))}
		case 2:
			return domain.PenUp{Points: pointsGen().Draw(t, "points")}
		case 3:
			return domain.PenDown{Points: pointsGen().Draw(t, "points")}
		case 4:
			return domain.PlotAbsolute{Points: pointsGen().Draw(t, "points")}
		default:
			return domain.PlotRelative{Points: pointsGen().Draw(t, "points")}
		}
	})
}

// model is a direct restatement of the drawing rule: a segment is emitted
// for every visited point while the pen is down and holds ink.
func model(commands []domain.Command) (domain.State, []domain.DrawRequest) {
	var s domain.State
	var out []domain.DrawRequest
	palette := domain.DefaultPalette()
	visit := func(p domain.Point) {
		if s.PenDown && s.Pen != 0 {
			color, _ := palette.Lookup(s.Pen)
			out = append(out, domain.DrawRequest{From: s.Position, To: p, Color: color})
		}
		s.Position = p
	}
	for _, c := range commands {
		switch c := c.(type) {
		case domain.SelectPen:
			s.Pen = c.Pen
		case domain.PenUp:
			s.PenDown = false
			if len(c.Points) > 0 {
				s.Position = c.Points[len(c.Points)-1]
			}
		case domain.PenDown:
			for _, p := range c.Points {
				visit(p)
				s.PenDown = true
			}
			s.PenDown = true
		case domain.PlotAbsolute:
			for _, p := range c.Points {
				visit(p)
			}
		case domain.PlotRelative:
			for _, d := range c.Points {
				visit(s.Position.Add(d))
			}
		}
	}
	return s, out
}

func TestEngine_Property_MatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		commands := rapid.SliceOfN(commandGen(), 0, 30).Draw(t, "commands")

		rec := ports.NewRecorder()
		state, err := runtime.NewEngine(rec).Run(context.Background(), commands)
		require.NoError(t, err)

		wantState, wantSegments := model(commands)
		assert.Equal(t, wantState, *state)
		assert.Equal(t, len(wantSegments), len(rec.Segments))
		assert.Equal(t, wantSegments, rec.Segments)
		for _, seg := range rec.Segments {
			assert.NotEmpty(t, seg.Color, "pen 0 never draws")
		}
	})
}

func TestEngine_Property_PenZeroNeverDraws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		commands := rapid.SliceOfN(commandGen(), 0, 30).Draw(t, "commands")

		// strip every pen selection so pen 0 stays active
		filtered := commands[:0:0]
		for _, c := range commands {
			if _, ok := c.(domain.SelectPen); !ok {
				filtered = append(filtered, c)
			}
		}

		rec := ports.NewRecorder()
		_, err := runtime.NewEngine(rec).Run(context.Background(), filtered)
		require.NoError(t, err)
		assert.Empty(t, rec.Segments)
	})
}

func TestEngine_Property_PenUpStopsDrawing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pen := uint8(rapid.IntRange(1, int(domain.MaxPen)).Draw(t, "pen"))
		moves := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) domain.Command {
			if rapid.Bool().Draw(t, "relative") {
				return domain.PlotRelative{Points: pointsGen().Draw(t, "points")}
			}
			return domain.PlotAbsolute{Points: pointsGen().Draw(t, "points")}
		}), 0, 10).Draw(t, "moves")

		commands := append([]domain.Command{
			domain.SelectPen{Pen: pen},
			domain.PenDown{Points: pointsGen().Draw(t, "down")},
			domain.PenUp{Points: pointsGen().Draw(t, "up")},
		}, moves...)

		var afterPenUp int
		hooks := domain.LifecycleHooks{
			OnSegment: func(_ context.Context, e *domain.SegmentEvent) {
				if e.Index > 2 {
					afterPenUp++
				}
			},
		}
		_, err := runtime.NewEngine(ports.Discard, runtime.WithLifecycleHooks(hooks)).Run(context.Background(), commands)
		require.NoError(t, err)
		assert.Zero(t, afterPenUp)
	})
}

func TestEngine_Property_RelativeDeltasAreAdditive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := pointGen().Draw(t, "start")
		deltas := rapid.SliceOfN(pointGen(), 1, 10).Draw(t, "deltas")

		var sum domain.Point
		for _, d := range deltas {
			sum = sum.Add(d)
		}

		stepwise, err := runtime.NewEngine(ports.Discard).Run(context.Background(), []domain.Command{
			domain.PenUp{Points: []domain.Point{start}},
			domain.PlotRelative{Points: deltas},
		})
		require.NoError(t, err)

		once, err := runtime.NewEngine(ports.Discard).Run(context.Background(), []domain.Command{
			domain.PenUp{Points: []domain.Point{start}},
			domain.PlotRelative{Points: []domain.Point{sum}},
		})
		require.NoError(t, err)

		assert.Equal(t, start.Add(sum), stepwise.Position)
		assert.Equal(t, once.Position, stepwise.Position)
	})
}

func TestEngine_Property_OutOfRangePenAborts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.SliceOfN(commandGen(), 0, 10).Draw(t, "prefix")
		pen := uint8(rapid.IntRange(int(domain.MaxPen)+1, 255).Draw(t, "pen"))
		suffix := rapid.SliceOfN(commandGen(), 0, 10).Draw(t, "suffix")

		commands := append(append(append([]domain.Command{}, prefix...), domain.SelectPen{Pen: pen}), suffix...)

		ran := 0
		hooks := domain.LifecycleHooks{OnCommand: func(context.Context, *domain.CommandEvent) { ran++ }}
		_, err := runtime.NewEngine(ports.Discard, runtime.WithLifecycleHooks(hooks)).Run(context.Background(), commands)

		require.ErrorIs(t, err, domain.ErrUnknownColorIndex)
		assert.Equal(t, len(prefix)+1, ran)
	})
}
