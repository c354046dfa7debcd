package observability

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scrape returns the exposition text served by m.
func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Hooks(t *testing.T) {
	m := NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnCommand(ctx, &domain.CommandEvent{Kind: domain.KindPenDown})
	hooks.OnCommand(ctx, &domain.CommandEvent{Kind: domain.KindPenDown})
	hooks.OnCommand(ctx, &domain.CommandEvent{Kind: domain.KindSelectPen})
	hooks.OnSegment(ctx, &domain.SegmentEvent{Segment: domain.DrawRequest{Color: "red"}})
	hooks.OnPenChange(ctx, &domain.PenEvent{To: 2})

	out := scrape(t, m)
	assert.Contains(t, out, `hpgl_commands_total{kind="PD"} 2`)
	assert.Contains(t, out, `hpgl_commands_total{kind="SP"} 1`)
	assert.Contains(t, out, `hpgl_segments_total{color="red"} 1`)
	assert.Contains(t, out, "hpgl_pen_changes_total 1")
	assert.Contains(t, out, "go_goroutines")
}

func TestMetrics_ObserveConversion(t *testing.T) {
	m := NewMetrics()
	errInvalid := errors.New("invalid")
	start := time.Now()

	m.ObserveConversion(start, nil, errInvalid)
	m.ObserveConversion(start, errors.Join(errInvalid, errors.New("odd")), errInvalid)
	m.ObserveConversion(start, errors.New("sink closed"), errInvalid)
	m.ObserveConversion(start, errors.New("sink closed"), nil)

	out := scrape(t, m)
	assert.Contains(t, out, `hpgl_conversions_total{outcome="ok"} 1`)
	assert.Contains(t, out, `hpgl_conversions_total{outcome="invalid_input"} 1`)
	assert.Contains(t, out, `hpgl_conversions_total{outcome="failed"} 2`)
	assert.Contains(t, out, "hpgl_conversion_duration_seconds_count 4")
}

func TestMetrics_Isolated(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.Hooks().OnPenChange(context.Background(), &domain.PenEvent{})

	assert.Contains(t, scrape(t, a), "hpgl_pen_changes_total 1")
	assert.Contains(t, scrape(t, b), "hpgl_pen_changes_total 0")
	assert.NotNil(t, a.Registry())
}
