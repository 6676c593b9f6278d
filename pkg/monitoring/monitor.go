package monitoring

import (
	"strconv"
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

	// 引擎侧指标：评卷、升班、预警
	GradeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_grades_total",
			Help: "Graded test submissions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	PromotionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_promotions_total",
			Help: "Class-level promotions by subject",
		},
		[]string{"subject"},
	)

	AlertCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_alerts_total",
			Help: "Escalation alerts raised by subject",
		},
		[]string{"subject"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(GradeCounter)
	prometheus.MustRegister(PromotionCounter)
	prometheus.MustRegister(AlertCounter)
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
