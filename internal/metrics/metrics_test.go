package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCascadeAndSweep(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.RecordCascade("board", 2, 5)
	m.RecordCascade("task", 1, 3)
	m.RecordSweep(1, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CascadesTotal.WithLabelValues("board")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CascadeRemovedTotal.WithLabelValues("task")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.CascadeRemovedTotal.WithLabelValues("subtask")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrphansSweptTotal.WithLabelValues("task")))
}

func TestRecordEventAndCache(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.RecordEventPublished("board.deleted", nil)
	m.RecordEventPublished("board.deleted", errors.New("queue down"))
	m.RecordTreeCache(true)
	m.RecordTreeCache(false)
	m.RecordTreeCache(false)
	m.IncrementBoardCreated()
	m.RecordHTTPRequest("GET", "/board/:boardId", 404, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublishTotal.WithLabelValues("board.deleted", "failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TreeCacheRequestsTotal.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BoardsCreatedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/board/:boardId", "4xx")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementBoardCreated()
		m.RecordCascade("board", 1, 1)
	})
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/health"))
	assert.True(t, ShouldSkipEndpoint("/kanban/metrics"))
	assert.True(t, ShouldSkipEndpoint("/api-docs/index.html"))
	assert.False(t, ShouldSkipEndpoint("/board"))
}
