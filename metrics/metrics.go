package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelService = "service"
	labelMethod  = "method"
	labelPath    = "path"
	labelStatus  = "status"

	unmatchedPath = "unmatched"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	Books    prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{labelService, labelMethod, labelPath, labelStatus},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{labelService, labelMethod, labelPath},
		),
		Books: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalog_books",
				Help: "Number of books in the catalog",
			},
		),
	}

	reg.MustRegister(m.Requests, m.Latency, m.Books)
	return m
}

// Middleware records request count and latency labelled by the gin route pattern, so
// /books/1 and /books/2 share a series.
func (m *Metrics) Middleware(service string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = unmatchedPath
		}

		m.Latency.WithLabelValues(service, ctx.Request.Method, path).
			Observe(time.Since(start).Seconds())

		m.Requests.WithLabelValues(service, ctx.Request.Method, path, strconv.Itoa(ctx.Writer.Status())).
			Inc()
	}
}

// SetBooks is nil-safe so handlers can report catalog size with metrics disabled.
func (m *Metrics) SetBooks(count int) {
	if m == nil {
		return
	}
	m.Books.Set(float64(count))
}
