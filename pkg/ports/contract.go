package ports

import (
	"bytes"
	"testing"

	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SinkFactory builds a fresh sink writing its document into buf.
type SinkFactory func(buf *bytes.Buffer) Sink

// RunSinkContract runs a suite of tests to verify that a Sink implementation
// adheres to the defined interface contract.
func RunSinkContract(t *testing.T, newSink SinkFactory) {
	canvas := domain.Rect{Width: 7650, Height: 10300}

	t.Run("Empty Document", func(t *testing.T) {
		var buf bytes.Buffer
		sink := newSink(&buf)

		require.NoError(t, sink.Begin(canvas))
		require.NoError(t, sink.End())
		assert.NotZero(t, buf.Len(), "an empty plot still produces a document")
	})

	t.Run("Every Pen Color", func(t *testing.T) {
		var buf bytes.Buffer
		sink := newSink(&buf)

		require.NoError(t, sink.Begin(canvas))
		for i, color := range domain.DefaultPalette().Colors() {
			y := (i + 1) * 500
			err := sink.DrawSegment(domain.DrawRequest{
				From:  domain.Point{X: 100, Y: y},
				To:    domain.Point{X: 7000, Y: y},
				Color: color,
			})
			require.NoError(t, err, "color %s", color)
		}
		require.NoError(t, sink.End())
		assert.NotZero(t, buf.Len())
	})

	t.Run("Segments Outside Canvas", func(t *testing.T) {
		var buf bytes.Buffer
		sink := newSink(&buf)

		require.NoError(t, sink.Begin(canvas))
		err := sink.DrawSegment(domain.DrawRequest{
			From:  domain.Point{X: -500, Y: -500},
			To:    domain.Point{X: 20000, Y: 20000},
			Color: "black",
		})
		require.NoError(t, err)
		require.NoError(t, sink.End())
	})

	t.Run("Nothing Written Before End", func(t *testing.T) {
		var buf bytes.Buffer
		sink := newSink(&buf)

		require.NoError(t, sink.Begin(canvas))
		require.NoError(t, sink.DrawSegment(domain.DrawRequest{
			From: domain.Point{}, To: domain.Point{X: 10, Y: 10}, Color: "red",
		}))
		assert.Zero(t, buf.Len(), "documents are flushed on End only")
		require.NoError(t, sink.End())
	})
}
