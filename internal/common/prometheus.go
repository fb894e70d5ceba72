package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	RaffleDrawTotal            = "raffle_draws_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "code"}),
		RaffleDrawTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RaffleDrawTotal,
			Help: "Count of all raffle draws by result",
		}, []string{"result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "code"}),
	}
)

// PromCollectors returns every metric of the service.
func PromCollectors() []prometheus.Collector {
	result := []prometheus.Collector{}
	for _, c := range PromCounters {
		result = append(result, c)
	}

	for _, h := range PromHistograms {
		result = append(result, h)
	}

	return result
}
