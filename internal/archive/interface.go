package archive

import (
	"context"

	"github.com/mauv0809/matchday/internal/tournament"
)

// Store persists finished tournaments and answers all-time questions about them.
type Store interface {
	SaveTournament(ctx context.Context, summary tournament.Summary) (string, error)
	ListTournaments(ctx context.Context, chatID string) ([]TournamentInfo, error)
	PlayerTotals(ctx context.Context, chatID string) (goals *tournament.Tally, assists *tournament.Tally, err error)
}
