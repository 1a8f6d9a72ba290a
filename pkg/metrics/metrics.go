package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smc"

// Metrics коллектор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AvailabilityFetches *prometheus.CounterVec
	Submissions         *prometheus.CounterVec
	ActiveSessions      prometheus.Gauge
}

// New создает метрики и регистрирует их в реестре по умолчанию
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		AvailabilityFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "availability_fetches_total",
			Help:        "Availability fetch results by outcome (applied, discarded, failed)",
			ConstLabels: labels,
		}, []string{"result"}),

		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "booking_submissions_total",
			Help:        "Booking submissions by outcome (created, failed)",
			ConstLabels: labels,
		}, []string{"result"}),

		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "active_sessions",
			Help:        "Number of open booking screen sessions",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AvailabilityFetches,
		m.Submissions,
		m.ActiveSessions,
	)

	return m
}

// AvailabilityApplied результат загрузки применен
func (m *Metrics) AvailabilityApplied() {
	m.AvailabilityFetches.WithLabelValues("applied").Inc()
}

// AvailabilityDiscarded результат загрузки устарел и отброшен
func (m *Metrics) AvailabilityDiscarded() {
	m.AvailabilityFetches.WithLabelValues("discarded").Inc()
}

// AvailabilityFailed загрузка не удалась
func (m *Metrics) AvailabilityFailed() {
	m.AvailabilityFetches.WithLabelValues("failed").Inc()
}

// SubmissionFinished запись создана или отклонена
func (m *Metrics) SubmissionFinished(created bool) {
	if created {
		m.Submissions.WithLabelValues("created").Inc()
		return
	}
	m.Submissions.WithLabelValues("failed").Inc()
}

func (m *Metrics) SessionOpened() {
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	m.ActiveSessions.Dec()
}
