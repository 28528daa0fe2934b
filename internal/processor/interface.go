package processor

import (
	"context"

	"github.com/mauv0809/matchday/internal/tournament"
)

// Finisher hands a finished tournament to the external sinks.
type Finisher interface {
	Finish(ctx context.Context, summary tournament.Summary) error
}
