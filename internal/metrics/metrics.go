package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every almanac collector. The tool runs once and exits, so
// metrics are written to a node_exporter textfile instead of being scraped.
var Registry = prometheus.NewRegistry()

// Fetch metrics - Track calls to the almanac service
var (
	FetchRequests = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanac_fetch_requests_total",
			Help: "Total number of almanac fetches by result",
		},
		[]string{"result"},
	)

	FetchDuration = promauto.With(Registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "almanac_fetch_duration_seconds",
		Help:    "Time taken to fetch and decode the full almanac",
		Buckets: prometheus.DefBuckets,
	})
)

// Image metrics - Describe the last fetched almanac
var (
	ImageBytes = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Name: "almanac_image_bytes",
		Help: "Size of the last decoded almanac image",
	})

	LastSuccess = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Name: "almanac_last_success_timestamp_seconds",
		Help: "Unix time of the last successful almanac fetch",
	})
)

// WriteTextfile dumps the registry in the Prometheus text format.
// The file is written atomically so a concurrent collector never reads a partial file.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
