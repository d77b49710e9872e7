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

	LessonsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lessons_completed_total",
			Help: "Lessons completed, by lesson type",
		},
		[]string{"lesson_type"},
	)

	XPAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "xp_awarded_total",
			Help: "Total XP granted to learners",
		},
	)

	AnswersGraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "answers_graded_total",
			Help: "Single answers graded, by question type and outcome",
		},
		[]string{"question_type", "outcome"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(LessonsCompleted)
	prometheus.MustRegister(XPAwarded)
	prometheus.MustRegister(AnswersGraded)
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
