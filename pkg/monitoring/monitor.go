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
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	GenerationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fusion_generation_runs_total",
			Help: "Daily puzzle generation runs by result",
		},
		[]string{"result"},
	)

	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fusion_generation_duration_seconds",
			Help:    "Duration of a full generation run",
			Buckets: []float64{5, 15, 30, 60, 120, 240},
		},
	)

	GuessCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fusion_guesses_total",
			Help: "Evaluated guesses by phase and outcome",
		},
		[]string{"phase", "outcome"},
	)

	Completions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fusion_completions_total",
			Help: "Genuine puzzle completions recorded in stats",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			GenerationRuns,
			GenerationDuration,
			GuessCounter,
			Completions,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
