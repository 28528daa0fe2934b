package commands

import (
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/matchday/internal/archive"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/processor"
	"github.com/mauv0809/matchday/internal/sheets"
	"github.com/mauv0809/matchday/internal/tournament"
)

// ErrUnauthorized is returned when a user outside the admin list runs an admin command.
var ErrUnauthorized = errors.New("unauthorized")

// TeamSlots names the roster slots selected by "1.", "2." and "3." in /teams.
var TeamSlots = []string{"🟦", "🟩", "🟧"}

// Command is one chat command with transport-neutral, namespaced ids.
type Command struct {
	ChatID string
	UserID string
	Name   string
	Args   string
	DryRun bool
}

// Deps are the collaborators of a Dispatcher. Sheet, Usage and Archive may be nil.
type Deps struct {
	Store    tournament.StateStore
	Finisher processor.Finisher
	Sheet    sheets.Sink
	Archive  archive.Store
	Metrics  metrics.Metrics
	Usage    metrics.MetricsStore
	AdminIDs []string
	Location *time.Location
}

// Dispatcher maps chat commands onto tournament state and the sinks.
type Dispatcher struct {
	store    tournament.StateStore
	finisher processor.Finisher
	sheet    sheets.Sink
	archive  archive.Store
	metrics  metrics.Metrics
	usage    metrics.MetricsStore
	admins   map[string]struct{}
	loc      *time.Location
	timeNow  func() time.Time

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}
