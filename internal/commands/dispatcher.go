package commands

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/tournament"
)

const (
	msgResultUsage      = "❌ Format: /result Team1 (Scorer1+Assistant1, Scorer2) 2-1 Team2 (Scorer3+Assistant3)"
	msgTeamsUsage       = "❌ Send the player list after /teams, e.g.\n/teams\n1.\nAlice\nBob\n2.\nCarol"
	msgNoMatches        = "⚠️ No matches to show."
	msgNoUndo           = "⚠️ No matches to undo."
	msgNoGoals          = "⚠️ No goals yet."
	msgNoAssists        = "⚠️ No assists yet."
	msgNoFinish         = "⚠️ Nothing to finish."
	msgFinished         = "⚠️ This tournament is finished. Use /start for a new one."
	msgFinishing        = "⏳ The tournament is being saved, try again in a moment."
	msgFinishFailed     = "⚠️ Could not save the tournament, try /end again."
	msgFinishedReplaced = "✅ Tournament saved. A new tournament had already been started in this chat."
	msgUnauthorized     = "⛔ Only admins can do that."
	msgUnknownCommand   = "🤷 Unknown command. Try /help."
)

// Names lists every supported command in help order.
var Names = []string{"start", "hello", "teams", "result", "undo", "table", "goals", "assists", "topscorers", "playmakers", "end", "reset", "fullreset", "help"}

// New creates a Dispatcher.
func New(deps Deps) *Dispatcher {
	admins := make(map[string]struct{}, len(deps.AdminIDs))
	for _, id := range deps.AdminIDs {
		admins[id] = struct{}{}
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Dispatcher{
		store:    deps.Store,
		finisher: deps.Finisher,
		sheet:    deps.Sheet,
		archive:  deps.Archive,
		metrics:  deps.Metrics,
		usage:    deps.Usage,
		admins:   admins,
		loc:      loc,
		timeNow:  time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Handle runs one command and returns the replies to post, in order.
func (d *Dispatcher) Handle(ctx context.Context, cmd Command) []string {
	cmd.Name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(cmd.Name), "/"))
	cmd.Args = strings.TrimSpace(cmd.Args)
	log.Debug("Handling command", "chat", cmd.ChatID, "user", cmd.UserID, "command", cmd.Name)

	var replies []string
	switch cmd.Name {
	case "start":
		replies = d.start(cmd)
	case "hello":
		replies = []string{"⚽ Bot is running!"}
	case "teams":
		replies = d.teams(cmd)
	case "result":
		replies = d.result(cmd)
	case "undo":
		replies = d.undo(cmd)
	case "table":
		replies = d.table(cmd)
	case "goals":
		replies = d.goals(cmd)
	case "assists":
		replies = d.assists(cmd)
	case "topscorers":
		replies = d.allTime(ctx, cmd, true)
	case "playmakers":
		replies = d.allTime(ctx, cmd, false)
	case "end":
		replies = d.end(ctx, cmd)
	case "reset":
		replies = d.reset(cmd)
	case "fullreset":
		replies = d.fullReset(cmd)
	case "help":
		replies = []string{FormatHelp()}
	default:
		return []string{msgUnknownCommand}
	}

	d.metrics.IncCommand(cmd.Name)
	if d.usage != nil {
		d.usage.Increment("command_" + cmd.Name)
	}
	return replies
}

// lockFor returns the mutex serializing commands of one chat.
func (d *Dispatcher) lockFor(chatID string) *sync.Mutex {
	d.locksMu.Lock()
	defer d.locksMu.Unlock()
	mu, ok := d.locks[chatID]
	if !ok {
		mu = &sync.Mutex{}
		d.locks[chatID] = mu
	}
	return mu
}

// withState runs fn on the chat's state under the chat lock, creating the state on first use.
func (d *Dispatcher) withState(chatID string, fn func(st *tournament.ChatState) []string) []string {
	mu := d.lockFor(chatID)
	mu.Lock()
	defer mu.Unlock()
	st, ok := d.store.Get(chatID)
	if !ok {
		st = tournament.NewChatState()
		d.store.Put(chatID, st)
	}
	return fn(st)
}

func (d *Dispatcher) start(cmd Command) []string {
	mu := d.lockFor(cmd.ChatID)
	mu.Lock()
	defer mu.Unlock()
	d.store.Put(cmd.ChatID, tournament.NewChatState())
	log.Info("Started tournament", "chat", cmd.ChatID)
	return []string{"⚽ New tournament started! Have a good game!"}
}

func (d *Dispatcher) teams(cmd Command) []string {
	if cmd.Args == "" {
		return []string{msgTeamsUsage}
	}
	rosters := tournament.ParseRosters(cmd.Args, TeamSlots)
	if len(rosters) == 0 {
		return []string{msgTeamsUsage}
	}
	return d.withState(cmd.ChatID, func(st *tournament.ChatState) []string {
		st.SetRosters(rosters)
		return []string{"✅ Rosters saved!\n" + FormatRosters(st.Rosters())}
	})
}

func (d *Dispatcher) result(cmd Command) []string {
	if cmd.Args == "" {
		return []string{msgResultUsage}
	}
	m, err := tournament.ParseMatch(cmd.Args)
	if err != nil {
		d.metrics.IncParseFailures()
		log.Info("Rejected result", "chat", cmd.ChatID, "error", err)
		var perr *tournament.ParseError
		if errors.As(err, &perr) {
			return []string{"⚠️ Invalid format: " + perr.Reason + "\n" + msgResultUsage}
		}
		return []string{msgResultUsage}
	}
	return d.withState(cmd.ChatID, func(st *tournament.ChatState) []string {
		if err := st.AddMatch(m); err != nil {
			return []string{replyForError(err)}
		}
		d.metrics.IncResultsRecorded()
		log.Info("Recorded match", "chat", cmd.ChatID, "match", FormatMatch(m))
		return []string{"✅ Result added: " + FormatMatch(m)}
	})
}

func (d *Dispatcher) undo(cmd Command) []string {
	return d.withState(cmd.ChatID, func(st *tournament.ChatState) []string {
		m, err := st.UndoLast()
		if err != nil {
			return []string{replyForError(err)}
		}
		d.metrics.IncUndos()
		log.Info("Undid match", "chat", cmd.ChatID, "match", FormatMatch(m))
		return []string{"↩️ Last match (" + FormatMatch(m) + ") undone!"}
	})
}

func (d *Dispatcher) table(cmd Command) []string {
	return d.withState(cmd.ChatID, func(st *tournament.ChatState) []string {
		matches := st.Matches()
		if len(matches) == 0 {
			return []string{msgNoMatches}
		}
		return []string{FormatTable(tournament.Standings(matches))}
	})
}

func (d *Dispatcher) goals(cmd Command) []string {
	return d.withState(cmd.ChatID, func(st *tournament.ChatState) []string {
		if st.Goals().Len() == 0 {
			return []string{msgNoGoals}
		}
		return []string{FormatLeaderboard("⚽ Goals:", tournament.Leaderboard(st.Goals()))}
	})
}

func (d *Dispatcher) assists(cmd Command) []string {
	return d.withState(cmd.ChatID, func(st *tournament.ChatState) []string {
		if st.Assists().Len() == 0 {
			return []string{msgNoAssists}
		}
		return []string{FormatLeaderboard("🎯 Assists:", tournament.Leaderboard(st.Assists()))}
	})
}

// allTime reads all-time totals from the spreadsheet, or from the archive when
// no spreadsheet is configured.
func (d *Dispatcher) allTime(ctx context.Context, cmd Command, goals bool) []string {
	var (
		g, a *tournament.Tally
		err  error
	)
	switch {
	case d.sheet != nil:
		g, a, err = d.sheet.Totals(ctx)
	case d.archive != nil:
		g, a, err = d.archive.PlayerTotals(ctx, cmd.ChatID)
	default:
		return []string{"⚠️ No all-time statistics are configured."}
	}
	if err != nil {
		log.Error("Failed to read all-time totals", "error", err, "chat", cmd.ChatID)
		return []string{"⚠️ Could not read all-time statistics."}
	}

	if goals {
		if g.Len() == 0 {
			return []string{"⚠️ No goal data."}
		}
		return []string{FormatLeaderboard("⚽ All-time scorers:", tournament.Leaderboard(g))}
	}
	if a.Len() == 0 {
		return []string{"⚠️ No assist data."}
	}
	return []string{FormatLeaderboard("🎯 All-time playmakers:", tournament.Leaderboard(a))}
}

// end posts the final table, MVP and leaderboards, then hands the tournament to
// the sinks outside the chat lock. While the hand-off runs the state refuses
// changes; it is marked finished only when the hand-off succeeds.
func (d *Dispatcher) end(ctx context.Context, cmd Command) []string {
	var (
		summary tournament.Summary
		state   *tournament.ChatState
	)
	replies := d.withState(cmd.ChatID, func(st *tournament.ChatState) []string {
		if err := st.BeginFinish(); err != nil {
			return []string{replyForError(err)}
		}
		if len(st.Matches()) == 0 || cmd.DryRun {
			st.AbortFinish()
		}
		if len(st.Matches()) == 0 {
			return []string{msgNoFinish}
		}
		state = st
		summary = st.Summary(cmd.ChatID, d.timeNow().In(d.loc).Format(time.DateOnly))

		out := []string{FormatTable(tournament.Standings(summary.Matches))}
		players, total := st.MVP()
		out = append(out, FormatMVP(players, total))
		if st.Goals().Len() > 0 {
			out = append(out, FormatLeaderboard("⚽ Goals:", tournament.Leaderboard(st.Goals())))
		}
		if st.Assists().Len() > 0 {
			out = append(out, FormatLeaderboard("🎯 Assists:", tournament.Leaderboard(st.Assists())))
		}
		return out
	})
	if state == nil {
		return replies
	}

	if cmd.DryRun {
		return append(replies, "🧪 Dry run: tournament not saved.")
	}
	err := d.finisher.Finish(ctx, summary)

	mu := d.lockFor(cmd.ChatID)
	mu.Lock()
	current, ok := d.store.Get(cmd.ChatID)
	replaced := !ok || current != state
	if err != nil {
		state.AbortFinish()
	} else {
		state.MarkFinished()
	}
	mu.Unlock()

	if err != nil {
		log.Error("Failed to finish tournament", "error", err, "chat", cmd.ChatID)
		return append(replies, msgFinishFailed)
	}
	log.Info("Ended tournament", "chat", cmd.ChatID, "tournament", summary.ID, "matches", len(summary.Matches))
	if replaced {
		return append(replies, msgFinishedReplaced)
	}
	return append(replies, "✅ Tournament finished, goals and assists saved!")
}

func (d *Dispatcher) reset(cmd Command) []string {
	return d.withState(cmd.ChatID, func(st *tournament.ChatState) []string {
		if st.Finishing() {
			return []string{msgFinishing}
		}
		st.Reset()
		log.Info("Reset tournament", "chat", cmd.ChatID)
		return []string{"🧹 Matches, goals and assists cleared. Rosters are kept."}
	})
}

func (d *Dispatcher) fullReset(cmd Command) []string {
	if _, ok := d.admins[cmd.UserID]; !ok {
		log.Warn("Refused fullreset", "chat", cmd.ChatID, "user", cmd.UserID)
		return []string{replyForError(ErrUnauthorized)}
	}
	mu := d.lockFor(cmd.ChatID)
	mu.Lock()
	defer mu.Unlock()
	d.store.Delete(cmd.ChatID)
	log.Info("Purged chat state", "chat", cmd.ChatID, "user", cmd.UserID)
	return []string{"🗑 All tournament data for this chat deleted."}
}

// replyForError turns a domain error into a chat reply.
func replyForError(err error) string {
	switch {
	case errors.Is(err, tournament.ErrEmptyHistory):
		return msgNoUndo
	case errors.Is(err, tournament.ErrTournamentFinished):
		return msgFinished
	case errors.Is(err, tournament.ErrFinishInProgress):
		return msgFinishing
	case errors.Is(err, ErrUnauthorized):
		return msgUnauthorized
	case errors.Is(err, tournament.ErrMalformedInput):
		return msgResultUsage
	default:
		return "⚠️ Something went wrong."
	}
}
