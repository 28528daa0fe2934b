package sheets

import (
	"context"

	"github.com/mauv0809/matchday/internal/tournament"
)

// Sink keeps all-time goal and assist totals outside the archive database.
type Sink interface {
	Sync(ctx context.Context, goals, assists *tournament.Tally) error
	Totals(ctx context.Context) (goals *tournament.Tally, assists *tournament.Tally, err error)
}
