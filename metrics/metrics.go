// Package metrics exports leave-application counters to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/warp/leave-tracker/leave"
)

// Metrics implements leave.Observer and records HTTP traffic.
type Metrics struct {
	accountsRegistered prometheus.Counter
	applications       *prometheus.CounterVec
	daysApplied        *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		accountsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leave_accounts_registered_total",
			Help: "Accounts registered in the directory",
		}),
		applications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leave_applications_total",
			Help: "Leave applications by category and result",
		}, []string{"category", "result"}),
		daysApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leave_days_applied_total",
			Help: "Days of leave stored, by category",
		}, []string{"category"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leave_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leave_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		m.accountsRegistered,
		m.applications,
		m.daysApplied,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) AccountRegistered() {
	m.accountsRegistered.Inc()
}

func (m *Metrics) LeaveApplied(category leave.Category, days int) {
	m.applications.WithLabelValues(category.String(), "accepted").Inc()
	m.daysApplied.WithLabelValues(category.String()).Add(float64(days))
}

func (m *Metrics) LeaveRejected(category leave.Category, reason leave.RejectReason) {
	m.applications.WithLabelValues(category.String(), string(reason)).Inc()
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	s := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, route, s).Inc()
	m.httpDuration.WithLabelValues(method, route, s).Observe(duration.Seconds())
}

var _ leave.Observer = (*Metrics)(nil)
