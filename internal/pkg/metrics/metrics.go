package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds all application metrics
type Metrics struct {
	// Lab report metrics
	LabReportsGenerated        *prometheus.CounterVec
	LabReportGenerationLatency prometheus.Histogram
	LabReportPages             prometheus.Histogram
	LabReportSize              prometheus.Histogram
	LabReportUploads           *prometheus.CounterVec

	// Clinic API metrics
	ClinicAPIRequests *prometheus.CounterVec
	ClinicAPILatency  *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all application metrics on registerer.
func NewMetrics(registerer prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		LabReportsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lab_report",
			Name:      "generated_total",
			Help:      "Total number of lab report generation runs",
		}, []string{"status"}),
		LabReportGenerationLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "lab_report",
			Name:      "generation_duration_seconds",
			Help:      "Time spent composing, rasterizing and uploading a lab report",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		LabReportPages: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "lab_report",
			Name:      "pages",
			Help:      "Number of pages per generated lab report",
			Buckets:   []float64{1, 2, 3},
		}),
		LabReportSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "lab_report",
			Name:      "size_bytes",
			Help:      "Size of generated lab report PDFs",
			Buckets:   prometheus.ExponentialBuckets(32*1024, 2, 8),
		}),
		LabReportUploads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lab_report",
			Name:      "uploads_total",
			Help:      "Total number of lab report uploads",
		}, []string{"gateway", "status"}),

		ClinicAPIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "clinic_api",
			Name:      "requests_total",
			Help:      "Total number of requests sent to the clinic API",
		}, []string{"operation", "status"}),
		ClinicAPILatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "clinic_api",
			Name:      "request_duration_seconds",
			Help:      "Duration of clinic API requests",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"operation"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
		}, []string{"method"}),
	}
}

// Status maps an error to the status label.
func Status(err error) string {
	if err != nil {
		return StatusFailure
	}
	return StatusSuccess
}
