package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labinv_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "labinv_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	requestsSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "labinv_requests_submitted_total",
			Help: "Inventory requests submitted.",
		},
	)

	reviewsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labinv_reviews_total",
			Help: "Committed reviews by final status.",
		},
		[]string{"status"},
	)

	unitsReleasedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "labinv_units_released_total",
			Help: "Stock units released by approvals.",
		},
	)

	lowStockAlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labinv_low_stock_alerts_total",
			Help: "Low-stock crossings by department.",
		},
		[]string{"department"},
	)

	contentionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labinv_lock_contention_total",
			Help: "Transactions aborted by lock contention, by operation.",
		},
		[]string{"op"},
	)

	dbConnections = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "labinv_db_connections",
			Help: "Database pool connections by state.",
		},
		[]string{"state"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		requestsSubmittedTotal,
		reviewsTotal,
		unitsReleasedTotal,
		lowStockAlertsTotal,
		contentionTotal,
		dbConnections,
	)
	// the default registry may already carry these
	_ = prometheus.Register(collectors.NewBuildInfoCollector())
}

func Handler() http.Handler { return promhttp.Handler() }

func RecordHTTP(method, route string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, route, fmt.Sprintf("%d", status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func RecordSubmitted() { requestsSubmittedTotal.Inc() }

func RecordReview(status string, released int) {
	reviewsTotal.WithLabelValues(status).Inc()
	if released > 0 {
		unitsReleasedTotal.Add(float64(released))
	}
}

func RecordLowStock(department string) { lowStockAlertsTotal.WithLabelValues(department).Inc() }

func RecordContention(op string) { contentionTotal.WithLabelValues(op).Inc() }

// UpdateDBConnections samples the pool stats of db.
func UpdateDBConnections(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	st := sqlDB.Stats()
	dbConnections.WithLabelValues("in_use").Set(float64(st.InUse))
	dbConnections.WithLabelValues("idle").Set(float64(st.Idle))
	dbConnections.WithLabelValues("max").Set(float64(st.MaxOpenConnections))
	return nil
}
