package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"kanban-api/pkg/log"
)

const namespace = "kanban_api"

// Metrics holds the application collectors. A nil *Metrics records nothing.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BoardsCreatedTotal prometheus.Counter
	// CascadesTotal counts cascading deletes by root aggregate (board, task).
	CascadesTotal *prometheus.CounterVec
	// CascadeRemovedTotal counts descendants removed by cascades by kind (task, subtask).
	CascadeRemovedTotal *prometheus.CounterVec
	OrphansSweptTotal   *prometheus.CounterVec
	EventsPublishTotal  *prometheus.CounterVec

	TreeCacheRequestsTotal *prometheus.CounterVec
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "endpoint"}),
		BoardsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boards_created_total",
			Help:      "Total number of boards created",
		}),
		CascadesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascades_total",
			Help:      "Total number of cascading deletes",
		}, []string{"aggregate"}),
		CascadeRemovedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascade_removed_total",
			Help:      "Total number of descendants removed by cascading deletes",
		}, []string{"kind"}),
		OrphansSweptTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphans_swept_total",
			Help:      "Total number of orphan rows removed by reconciliation",
		}, []string{"kind"}),
		EventsPublishTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_publish_total",
			Help:      "Total number of aggregate events published",
		}, []string{"type", "result"}),
		TreeCacheRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tree_cache_requests_total",
			Help:      "Board tree cache lookups by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		m.HTTPRequestsTotal.WithLabelValues(method, endpoint, categorizeStatus(statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	})
}

func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardsCreatedTotal.Inc()
	})
}

// RecordCascade counts one cascade rooted at aggregate and the children it removed.
func (m *Metrics) RecordCascade(aggregate string, tasks, subtasks int64) {
	m.safeExecute("RecordCascade", func() {
		m.CascadesTotal.WithLabelValues(aggregate).Inc()
		m.CascadeRemovedTotal.WithLabelValues("task").Add(float64(tasks))
		m.CascadeRemovedTotal.WithLabelValues("subtask").Add(float64(subtasks))
	})
}

func (m *Metrics) RecordSweep(tasks, subtasks int64) {
	m.safeExecute("RecordSweep", func() {
		m.OrphansSweptTotal.WithLabelValues("task").Add(float64(tasks))
		m.OrphansSweptTotal.WithLabelValues("subtask").Add(float64(subtasks))
	})
}

func (m *Metrics) RecordEventPublished(eventType string, err error) {
	m.safeExecute("RecordEventPublished", func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		m.EventsPublishTotal.WithLabelValues(eventType, result).Inc()
	})
}

func (m *Metrics) RecordTreeCache(hit bool) {
	m.safeExecute("RecordTreeCache", func() {
		result := "miss"
		if hit {
			result = "hit"
		}
		m.TreeCacheRequestsTotal.WithLabelValues(result).Inc()
	})
}

func (m *Metrics) safeExecute(operation string, fn func()) {
	if m == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("metrics operation panicked", zap.String("operation", operation), zap.Any("panic", r))
		}
	}()
	fn()
}

func categorizeStatus(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

// ShouldSkipEndpoint excludes scrape, probe and docs traffic from HTTP metrics.
func ShouldSkipEndpoint(path string) bool {
	return strings.HasSuffix(path, "/metrics") || strings.HasSuffix(path, "/health") || strings.Contains(path, "/api-docs/")
}
