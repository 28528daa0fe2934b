package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/commands"
	slacknotifier "github.com/mauv0809/matchday/internal/notifier/slack"
	"github.com/mauv0809/matchday/internal/pubsub"
	"github.com/mauv0809/matchday/internal/tournament"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// UsageHandler serves the durable usage counters as JSON.
func (s *Server) UsageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Usage == nil {
			http.Error(w, "Usage counters are not enabled", http.StatusNotFound)
			return
		}
		usage, err := s.Usage.GetAll()
		if err != nil {
			http.Error(w, "Failed to get usage", http.StatusInternalServerError)
			log.Error("Failed to get usage counters", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(usage); err != nil {
			log.Error("Failed to encode usage to JSON", "error", err)
		}
	}
}

// responseTypeInChannel makes a slash command reply visible to the whole channel.
const responseTypeInChannel = "in_channel"

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// SlackCommandHandler runs a slash command such as "/result A 2-1 B" and
// answers in the channel.
func (s *Server) SlackCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			log.Error("Failed to parse slash command", "error", err)
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		if cmd.Command == "" || cmd.ChannelID == "" {
			http.Error(w, "Command and channel are required.", http.StatusBadRequest)
			return
		}

		log.Info("Received slash command", "command", cmd.Command, "channel", cmd.ChannelID, "user", cmd.UserID)
		replies := s.Commands.Handle(r.Context(), commands.Command{
			ChatID: "slack:" + cmd.ChannelID,
			UserID: "slack:" + cmd.UserID,
			Name:   cmd.Command,
			Args:   cmd.Text,
			DryRun: isDryRunFromContext(r),
		})

		text := strings.Join(replies, "\n\n")
		msg := slacknotifier.BuildMessage(text)
		msg.ResponseType = responseTypeInChannel
		msg.Text = text
		respondWithSlackMsg(w, msg)
	}
}

// TournamentFinishedHandler receives finished tournaments from the Pub/Sub push subscription.
// A non-2xx answer makes Pub/Sub redeliver.
func (s *Server) TournamentFinishedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received tournament finished message", "body", string(bodyBytes))

		rawData, event, err := pubsub.ParsePush(bodyBytes)
		if err != nil {
			log.Error("Failed to unwrap push message", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if event != "" && event != pubsub.EventTournamentFinished {
			log.Warn("Ignoring unexpected event", "event", event)
			w.Write([]byte("IGNORED"))
			return
		}

		decode := pubsub.Decode
		if s.pubsub != nil {
			decode = s.pubsub.ProcessMessage
		}
		var summary tournament.Summary
		if err := decode(rawData, &summary); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if err := s.Processor.HandleTournamentFinished(r.Context(), summary, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to finish tournament", "error", err, "chat", summary.ChatID)
			http.Error(w, "Failed to finish tournament", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
