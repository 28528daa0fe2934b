package processor

import (
	"github.com/mauv0809/matchday/internal/archive"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/pubsub"
	"github.com/mauv0809/matchday/internal/sheets"
)

// Processor writes finished tournaments to the archive and the spreadsheet.
type Processor struct {
	archive  archive.Store
	sheet    sheets.Sink
	notifier notifier.Notifier
	metrics  metrics.Metrics
	usage    metrics.MetricsStore
}

// AsyncFinisher defers finishing to a pubsub subscriber.
type AsyncFinisher struct {
	pubsub pubsub.PubSubClient
}
