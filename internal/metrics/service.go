package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_commands_total",
			Help: "Chat commands handled, by command name.",
		}, []string{"command"}),
		ResultsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_results_recorded_total",
			Help: "Match results appended to a tournament.",
		}),
		Undos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_undos_total",
			Help: "Match results removed with undo.",
		}),
		ParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_parse_failures_total",
			Help: "Result commands rejected as malformed.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_notifications_sent_total",
			Help: "Chat messages successfully delivered.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_notifications_failed_total",
			Help: "Chat messages that failed to deliver.",
		}),
		TournamentsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_tournaments_finished_total",
			Help: "Tournaments archived after end.",
		}),
		FinishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchday_finish_duration_seconds",
			Help:    "Duration of archiving and syncing a finished tournament.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchday_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Commands,
		s.ResultsRecorded,
		s.Undos,
		s.ParseFailures,
		s.NotifSent,
		s.NotifFailed,
		s.TournamentsFinished,
		s.FinishDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncCommand(name string) {
	s.Commands.WithLabelValues(name).Inc()
}

func (s *Service) IncResultsRecorded() {
	s.ResultsRecorded.Inc()
}

func (s *Service) IncUndos() {
	s.Undos.Inc()
}

func (s *Service) IncParseFailures() {
	s.ParseFailures.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) IncTournamentsFinished() {
	s.TournamentsFinished.Inc()
}

func (s *Service) ObserveFinishDuration(duration float64) {
	s.FinishDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
