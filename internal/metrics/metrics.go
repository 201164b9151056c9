package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	InFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "http_in_flight_requests", Help: "In-flight HTTP requests"},
	)
	RenderCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "render_cache_lookups_total", Help: "Render cache lookups by result"},
		[]string{"path", "result"},
	)
	EventsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "events_consumed_total", Help: "Queue deliveries handled by outcome"},
		[]string{"key", "outcome"},
	)
)

func MustRegister() {
	prometheus.MustRegister(RequestsTotal, ReqDuration, InFlight, RenderCacheLookups)
}

// MustRegisterConsumer registers the collectors the notifier exposes.
func MustRegisterConsumer() {
	prometheus.MustRegister(EventsConsumed)
}
