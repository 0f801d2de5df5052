// Package metrics collects and exposes Prometheus metrics for the
// attendance service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts attendance and report activity. Callers hold the
// interface so tests can pass a no-op.
type Collector interface {
	RecordSignIn(status string)
	RecordSignOut(status string)
	RecordReportSent(kind string)
	RecordReportFailure(kind string)
}

type promCollector struct {
	signIns        *prometheus.CounterVec
	signOuts       *prometheus.CounterVec
	reportsSent    *prometheus.CounterVec
	reportFailures *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) Collector {
	c := &promCollector{
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_sign_in_total",
			Help: "Sign-ins recorded, labelled by punctuality status",
		}, []string{"status"}),
		signOuts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_sign_out_total",
			Help: "Sign-outs recorded, labelled by departure status",
		}, []string{"status"}),
		reportsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_report_sent_total",
			Help: "Scheduled reports delivered, labelled by report kind",
		}, []string{"kind"}),
		reportFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_report_failure_total",
			Help: "Scheduled report deliveries that failed, labelled by report kind",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		c.signIns,
		c.signOuts,
		c.reportsSent,
		c.reportFailures,
	)

	return c
}

func (c *promCollector) RecordSignIn(status string) {
	c.signIns.WithLabelValues(status).Inc()
}

func (c *promCollector) RecordSignOut(status string) {
	c.signOuts.WithLabelValues(status).Inc()
}

func (c *promCollector) RecordReportSent(kind string) {
	c.reportsSent.WithLabelValues(kind).Inc()
}

func (c *promCollector) RecordReportFailure(kind string) {
	c.reportFailures.WithLabelValues(kind).Inc()
}

// Noop returns a collector that discards everything. Handy in tests.
func Noop() Collector {
	return noopCollector{}
}

type noopCollector struct{}

func (noopCollector) RecordSignIn(string)        {}
func (noopCollector) RecordSignOut(string)       {}
func (noopCollector) RecordReportSent(string)    {}
func (noopCollector) RecordReportFailure(string) {}
