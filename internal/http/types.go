package http

import (
	"context"
	"net/http"

	"github.com/mauv0809/matchday/internal/commands"
	"github.com/mauv0809/matchday/internal/config"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/processor"
	"github.com/mauv0809/matchday/internal/pubsub"
)

// CommandHandler runs a chat command and returns its replies.
type CommandHandler interface {
	Handle(ctx context.Context, cmd commands.Command) []string
}

type Server struct {
	Commands       CommandHandler
	Processor      *processor.Processor
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Usage          metrics.MetricsStore
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
