package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	Commands            *prometheus.CounterVec
	ResultsRecorded     prometheus.Counter
	Undos               prometheus.Counter
	ParseFailures       prometheus.Counter
	NotifSent           prometheus.Counter
	NotifFailed         prometheus.Counter
	TournamentsFinished prometheus.Counter
	FinishDuration      prometheus.Histogram
	StartupTimeSeconds  prometheus.Gauge
}
