package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/hpgl2svg/pkg/domain"
)

// apply executes a single command against state.
func (e *Engine) apply(ctx context.Context, index int, state *domain.State, cmd domain.Command) error {
	switch c := cmd.(type) {
	case domain.Initialize:
		// reset marker only
		return nil

	case domain.SelectPen:
		return e.selectPen(ctx, index, state, c.Pen)

	case domain.PenUp:
		state.PenDown = false
		if n := len(c.Points); n > 0 {
			state.Position = c.Points[n-1]
		}
		return nil

	case domain.PenDown:
		for _, p := range c.Points {
			if err := e.moveTo(ctx, index, state, p); err != nil {
				return err
			}
			state.PenDown = true
		}
		state.PenDown = true
		return nil

	case domain.PlotAbsolute:
		for _, p := range c.Points {
			if err := e.moveTo(ctx, index, state, p); err != nil {
				return err
			}
		}
		return nil

	case domain.PlotRelative:
		for _, delta := range c.Points {
			if err := e.moveTo(ctx, index, state, state.Position.Add(delta)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported command type %T", cmd)
}

// selectPen validates pen against the color table before making it active.
func (e *Engine) selectPen(ctx context.Context, index int, state *domain.State, pen uint8) error {
	if !e.palette.Valid(pen) {
		return &domain.UnknownColorIndexError{Pen: pen}
	}
	prev := state.Pen
	state.Pen = pen

	if e.hooks.OnPenChange != nil {
		color, _ := e.palette.Lookup(pen)
		e.hooks.OnPenChange(ctx, &domain.PenEvent{
			EventBase: newEvent(domain.EventPenChange, index),
			From:      prev,
			To:        pen,
			Color:     color,
		})
	}
	return nil
}
