package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	GenerationRequestsTotal metric.Int64Counter
	GenerationFailuresTotal metric.Int64Counter
	ChatRequestsTotal       metric.Int64Counter
	ChatFailuresTotal       metric.Int64Counter
	PDFExportsTotal         metric.Int64Counter
	RemoteCallDuration      metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments ONLY ONCE, from
// the globally configured MeterProvider. Before the provider is set up the
// instruments come from the no-op provider, so recording is always safe.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("wayfarer")
		var err error
		m := &AppMetrics{}

		m.GenerationRequestsTotal, err = meter.Int64Counter(
			"itinerary_generation_requests_total",
			metric.WithDescription("Total number of itinerary generation requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generation_requests_total: %v", err)
		}

		m.GenerationFailuresTotal, err = meter.Int64Counter(
			"itinerary_generation_failures_total",
			metric.WithDescription("Total number of failed itinerary generations"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generation_failures_total: %v", err)
		}

		m.ChatRequestsTotal, err = meter.Int64Counter(
			"chat_requests_total",
			metric.WithDescription("Total number of chat exchanges"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create chat_requests_total: %v", err)
		}

		m.ChatFailuresTotal, err = meter.Int64Counter(
			"chat_failures_total",
			metric.WithDescription("Total number of failed chat exchanges"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create chat_failures_total: %v", err)
		}

		m.PDFExportsTotal, err = meter.Int64Counter(
			"pdf_exports_total",
			metric.WithDescription("Total number of itinerary PDF exports"),
			metric.WithUnit("{export}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create pdf_exports_total: %v", err)
		}

		m.RemoteCallDuration, err = meter.Float64Histogram(
			"completion_request_duration_seconds",
			metric.WithDescription("Duration of remote completion requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create completion_request_duration_seconds: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global instruments, initializing them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
