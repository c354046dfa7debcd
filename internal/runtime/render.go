package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/hpgl2svg/pkg/domain"
)

// moveTo travels to p, drawing a segment from the previous position
// only when the pen is already down and holds ink.
func (e *Engine) moveTo(ctx context.Context, index int, state *domain.State, p domain.Point) error {
	if state.Inking() {
		if err := e.draw(ctx, index, state.Position, p, state.Pen); err != nil {
			return err
		}
	}
	state.Position = p
	return nil
}

func (e *Engine) draw(ctx context.Context, index int, from, to domain.Point, pen uint8) error {
	color, err := e.palette.Lookup(pen)
	if err != nil {
		return err
	}

	seg := domain.DrawRequest{From: from, To: to, Color: color}
	if err := e.sink.DrawSegment(seg); err != nil {
		return fmt.Errorf("sink rejected segment %v->%v: %w", from, to, err)
	}

	if e.hooks.OnSegment != nil {
		e.hooks.OnSegment(ctx, &domain.SegmentEvent{
			EventBase: newEvent(domain.EventSegment, index),
			Segment:   seg,
		})
	}
	return nil
}

func newEvent(t domain.EventType, index int) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Index: index}
}
