package http

import (
	"net/http"

	"github.com/mauv0809/matchday/internal/config"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/processor"
	"github.com/mauv0809/matchday/internal/pubsub"
)

func NewServer(commands CommandHandler, metricsSvc metrics.Metrics, metricsHandler http.Handler, usage metrics.MetricsStore, cfg config.Config, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Commands:       commands,
		Processor:      processor,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Usage:          usage,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/usage", Chain(s.UsageHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command", Chain(s.SlackCommandHandler(), paramsMiddleware, s.slackVerificationMiddleware))
	s.Router.Handle("POST /pubsub/tournament-finished", Chain(s.TournamentFinishedHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
