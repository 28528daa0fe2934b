package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/matchday/internal/archive"
	"github.com/mauv0809/matchday/internal/commands"
	"github.com/mauv0809/matchday/internal/config"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/processor"
	"github.com/mauv0809/matchday/internal/pubsub"
	"github.com/mauv0809/matchday/internal/tournament"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSlackSigningSecret = "test-signing-secret"

type fakeCommands struct {
	mu      sync.Mutex
	calls   []commands.Command
	replies []string
}

func (f *fakeCommands) Handle(ctx context.Context, cmd commands.Command) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)
	return f.replies
}

type testServer struct {
	*Server
	commands *fakeCommands
	archive  *archive.MockStore
	notifier *notifier.Mock
	usage    *metrics.StoreMock
}

// setupTestServer builds a server around mocks.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.Config{Slack: config.SlackConfig{SigningSecret: testSlackSigningSecret}}
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	ts := &testServer{
		commands: &fakeCommands{replies: []string{"✅ Result added: A 2-1 B"}},
		archive:  archive.NewMock(),
		notifier: notifier.NewMock(),
		usage:    metrics.NewStoreMock(),
	}
	proc := processor.New(ts.archive, nil, ts.notifier, metricsSvc, ts.usage)
	ts.Server = NewServer(ts.commands, metricsSvc, metricsHandler, ts.usage, cfg, proc, pubsub.NewMock())
	return ts
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	bodyBytes := []byte(form.Encode())
	req, err := http.NewRequest("POST", targetURL, bytes.NewReader(bodyBytes))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, string(bodyBytes))
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))

	return req
}

func TestHealthCheckHandler(t *testing.T) {
	server := setupTestServer(t)

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestUsageHandler(t *testing.T) {
	server := setupTestServer(t)
	server.usage.Increment("command_result")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, httptest.NewRequest("GET", "/usage", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var got map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, map[string]int{"command_result": 1}, got)
}

func TestMetricsEndpoint(t *testing.T) {
	server := setupTestServer(t)
	server.Metrics.IncCommand("table")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `matchday_commands_total{command="table"} 1`)
}

func TestSlackCommandHandler(t *testing.T) {
	server := setupTestServer(t)

	form := url.Values{}
	form.Set("command", "/result")
	form.Set("text", "A (Messi) 2-1 B (Ronaldo)")
	form.Set("channel_id", "C1")
	form.Set("user_id", "U9")

	t.Run("runs the command", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command?dry_run=true", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		require.Len(t, server.commands.calls, 1)
		assert.Equal(t, commands.Command{
			ChatID: "slack:C1",
			UserID: "slack:U9",
			Name:   "/result",
			Args:   "A (Messi) 2-1 B (Ronaldo)",
			DryRun: true,
		}, server.commands.calls[0])

		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "in_channel", body["response_type"])
		assert.Equal(t, "✅ Result added: A 2-1 B", body["text"])
	})

	t.Run("rejects request with invalid signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command", form, testSlackSigningSecret)
		req.Header.Set("X-Slack-Signature", "v0=invalid-signature")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects request with missing signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command", form, testSlackSigningSecret)
		req.Header.Del("X-Slack-Signature")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects request with outdated timestamp", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command", form, testSlackSigningSecret)
		req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(time.Now().Add(-6*time.Minute).Unix(), 10))

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects missing channel", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command", url.Values{"command": {"/table"}}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	assert.Len(t, server.commands.calls, 1)
}

func TestTournamentFinishedHandler(t *testing.T) {
	summary := tournament.Summary{
		ChatID:  "tg:5",
		Date:    "2025-05-01",
		Matches: []tournament.Match{{Team1: "A", Score1: 1, Team2: "B", Team1Contributions: "Messi"}},
		Goals:   []tournament.LeaderboardEntry{{Player: "Messi", Count: 1}},
	}

	post := func(server *testServer, body []byte) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, httptest.NewRequest("POST", "/pubsub/tournament-finished", bytes.NewReader(body)))
		return rr
	}

	t.Run("archives and reports", func(t *testing.T) {
		server := setupTestServer(t)
		body, err := pubsub.EncodePush(pubsub.EventTournamentFinished, summary)
		require.NoError(t, err)

		rr := post(server, body)
		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, server.archive.SaveTournamentCalls, 1)
		assert.Equal(t, summary.ChatID, server.archive.SaveTournamentCalls[0].ChatID)
		calls := server.notifier.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "tg:5", calls[0].ChatID)
	})

	t.Run("archive failure asks for redelivery", func(t *testing.T) {
		server := setupTestServer(t)
		server.archive.SaveTournamentFunc = func(tournament.Summary) (string, error) {
			return "", errors.New("locked")
		}
		body, err := pubsub.EncodePush(pubsub.EventTournamentFinished, summary)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, post(server, body).Code)
	})

	t.Run("bad envelope", func(t *testing.T) {
		server := setupTestServer(t)
		assert.Equal(t, http.StatusBadRequest, post(server, []byte("nope")).Code)
		assert.Empty(t, server.archive.SaveTournamentCalls)
	})

	t.Run("other events are acknowledged", func(t *testing.T) {
		server := setupTestServer(t)
		body, err := pubsub.EncodePush(pubsub.EventType("something-else"), summary)
		require.NoError(t, err)

		rr := post(server, body)
		assert.Equal(t, http.StatusOK, rr.Code)
		body2, _ := io.ReadAll(rr.Body)
		assert.True(t, strings.HasPrefix(string(body2), "IGNORED"))
		assert.Empty(t, server.archive.SaveTournamentCalls)
	})
}
