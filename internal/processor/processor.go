package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/archive"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/pubsub"
	"github.com/mauv0809/matchday/internal/sheets"
	"github.com/mauv0809/matchday/internal/tournament"
)

var (
	_ Finisher = (*Processor)(nil)
	_ Finisher = (*AsyncFinisher)(nil)
)

// New creates a new Processor. sheet and usage may be nil.
func New(store archive.Store, sheet sheets.Sink, notifier notifier.Notifier, metrics metrics.Metrics, usage metrics.MetricsStore) *Processor {
	return &Processor{
		archive:  store,
		sheet:    sheet,
		notifier: notifier,
		metrics:  metrics,
		usage:    usage,
	}
}

// Finish archives the tournament and adds its tallies to the spreadsheet.
func (p *Processor) Finish(ctx context.Context, summary tournament.Summary) error {
	start := time.Now()
	log.Info("Finishing tournament", "chat", summary.ChatID, "date", summary.Date, "matches", len(summary.Matches))

	id, err := p.archive.SaveTournament(ctx, summary)
	if err != nil {
		log.Error("Failed to archive tournament", "error", err, "chat", summary.ChatID)
		return fmt.Errorf("failed to archive tournament: %w", err)
	}

	if p.sheet != nil {
		if err := p.sheet.Sync(ctx, summary.GoalTally(), summary.AssistTally()); err != nil {
			log.Error("Failed to sync spreadsheet", "error", err, "chat", summary.ChatID, "tournament", id)
			return fmt.Errorf("failed to sync spreadsheet: %w", err)
		}
	}

	p.metrics.IncTournamentsFinished()
	p.metrics.ObserveFinishDuration(time.Since(start).Seconds())
	if p.usage != nil {
		p.usage.Increment("tournaments_finished")
	}
	log.Info("Tournament finished", "chat", summary.ChatID, "tournament", id)
	return nil
}

// HandleTournamentFinished finishes a tournament delivered through pubsub and
// tells the chat how it went.
func (p *Processor) HandleTournamentFinished(ctx context.Context, summary tournament.Summary, dryRun bool) error {
	finishErr := p.Finish(ctx, summary)
	text := "🗄 Tournament saved to the archive."
	if finishErr != nil {
		text = "⚠️ Could not save the tournament: " + finishErr.Error()
	}
	if p.notifier != nil {
		if err := p.notifier.SendText(ctx, summary.ChatID, text, dryRun); err != nil {
			log.Error("Failed to report finished tournament", "error", err, "chat", summary.ChatID)
		}
	}
	return finishErr
}

// NewAsync creates a Finisher that publishes finished tournaments instead of
// writing them inline.
func NewAsync(client pubsub.PubSubClient) *AsyncFinisher {
	return &AsyncFinisher{pubsub: client}
}

func (a *AsyncFinisher) Finish(ctx context.Context, summary tournament.Summary) error {
	if err := a.pubsub.SendMessage(ctx, pubsub.EventTournamentFinished, summary); err != nil {
		return fmt.Errorf("failed to publish finished tournament: %w", err)
	}
	log.Info("Published finished tournament", "chat", summary.ChatID, "matches", len(summary.Matches))
	return nil
}
