package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	inferenceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glinerd",
			Subsystem: "inference",
			Name:      "total",
			Help:      "Inference calls by outcome",
		},
		[]string{"outcome"},
	)

	inferenceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "glinerd",
			Subsystem: "inference",
			Name:      "duration_seconds",
			Help:      "Engine call duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	inferenceWaiting = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "glinerd",
			Subsystem: "inference",
			Name:      "waiting",
			Help:      "Requests waiting for the inference slot",
		},
	)

	modelLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "glinerd",
			Name:      "model_loaded",
			Help:      "1 when the model slot holds an engine",
		},
	)
)

func init() {
	prometheus.MustRegister(inferenceTotal, inferenceDuration, inferenceWaiting, modelLoaded)
}
