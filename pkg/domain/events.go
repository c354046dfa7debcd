package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCommand   EventType = "command"
	EventSegment   EventType = "segment"
	EventPenChange EventType = "pen_change"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Index     int       `json:"index"` // position of the command in the stream
}

// CommandEvent is emitted before a command is applied.
type CommandEvent struct {
	EventBase
	Kind    CommandKind `json:"kind"`
	Command Command     `json:"-"`
	State   State       `json:"state"`
}

// SegmentEvent is emitted after a segment was handed to the sink.
type SegmentEvent struct {
	EventBase
	Segment DrawRequest `json:"segment"`
}

// PenEvent is emitted when SelectPen changes the active pen.
type PenEvent struct {
	EventBase
	From  uint8  `json:"from"`
	To    uint8  `json:"to"`
	Color string `json:"color,omitempty"`
}

// LifecycleHooks defines callbacks for interpreter observability.
// Hooks run synchronously on the interpreting goroutine.
type LifecycleHooks struct {
	OnCommand   func(context.Context, *CommandEvent)
	OnSegment   func(context.Context, *SegmentEvent)
	OnPenChange func(context.Context, *PenEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCommand:   chain(h.OnCommand, other.OnCommand),
		OnSegment:   chain(h.OnSegment, other.OnSegment),
		OnPenChange: chain(h.OnPenChange, other.OnPenChange),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
