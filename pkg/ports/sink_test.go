package ports_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	rec := ports.NewRecorder()
	canvas := domain.Rect{Width: 100, Height: 200}

	require.NoError(t, rec.Begin(canvas))
	require.NoError(t, rec.DrawSegment(domain.DrawRequest{To: domain.Point{X: 1, Y: 1}, Color: "black"}))
	require.NoError(t, rec.End())

	assert.True(t, rec.Begun)
	assert.True(t, rec.Ended)
	assert.Equal(t, canvas, rec.Bounds)
	assert.Len(t, rec.Segments, 1)
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, ports.Discard.Begin(domain.Rect{}))
	assert.NoError(t, ports.Discard.DrawSegment(domain.DrawRequest{}))
	assert.NoError(t, ports.Discard.End())
}

// bufferingRecorder writes one line per segment on End, like a real document sink.
type bufferingRecorder struct {
	ports.Recorder
	out *bytes.Buffer
}

func (b *bufferingRecorder) End() error {
	b.out.WriteString("begin\n")
	for _, s := range b.Segments {
		b.out.WriteString(s.Color + "\n")
	}
	return b.Recorder.End()
}

func TestSinkContract_Recorder(t *testing.T) {
	ports.RunSinkContract(t, func(buf *bytes.Buffer) ports.Sink {
		return &bufferingRecorder{out: buf}
	})
}
