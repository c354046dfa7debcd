package ports

import (
	"github.com/aretw0/hpgl2svg/pkg/domain"
)

// Sink serializes the output of a conversion.
// Begin is called once before any segment and End once after the last one.
// End is never called when the conversion fails.
type Sink interface {
	Begin(bounds domain.Rect) error
	DrawSegment(seg domain.DrawRequest) error
	End() error
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Begin(domain.Rect) error              { return nil }
func (discard) DrawSegment(domain.DrawRequest) error { return nil }
func (discard) End() error                           { return nil }

// Recorder is an in-memory Sink keeping every call it receives.
type Recorder struct {
	Bounds   domain.Rect
	Segments []domain.DrawRequest
	Begun    bool
	Ended    bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Begin(bounds domain.Rect) error {
	r.Bounds = bounds
	r.Begun = true
	return nil
}

func (r *Recorder) DrawSegment(seg domain.DrawRequest) error {
	r.Segments = append(r.Segments, seg)
	return nil
}

func (r *Recorder) End() error {
	r.Ended = true
	return nil
}
