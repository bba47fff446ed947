package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	DraftEdits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_draft_edits_total",
			Help: "Draft edit operations by outcome",
		},
		[]string{"result"},
	)

	BudgetRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "course_description_budget_rejections_total",
			Help: "Description edits rejected for exceeding the character budget",
		},
	)

	Submits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_submits_total",
			Help: "Course submits by session mode and result",
		},
		[]string{"mode", "result"},
	)

	AssetUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_asset_uploads_total",
			Help: "Image uploads performed at submit time",
		},
		[]string{"result"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(DraftEdits)
		prometheus.MustRegister(BudgetRejections)
		prometheus.MustRegister(Submits)
		prometheus.MustRegister(AssetUploads)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
