package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/http/handlers"
	"github.com/mauv0809/pitchside/internal/journal"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/orchestrator"
	"github.com/mauv0809/pitchside/internal/schedule"
	"github.com/mauv0809/pitchside/internal/selection"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*Server
	client  *backend.MockClient
	clock   *schedule.Fake
	journal *journal.MockJournal
	orch    *orchestrator.Orchestrator
	metrics *metrics.Service
}

// setupTestServer wires a real orchestrator on a fake clock behind the router.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	client := backend.NewMockClient()
	client.ListTeamsFunc = func(ctx context.Context) ([]backend.Team, error) {
		return []backend.Team{{ID: 57, Name: "Arsenal"}, {ID: 61, Name: "Chelsea"}}, nil
	}
	clock := schedule.NewFake()
	j := journal.NewMock()

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	o := orchestrator.New(client, selection.NewStore(), orchestrator.Options{
		Scheduler: clock,
		Metrics:   metricsSvc,
		Sinks:     []orchestrator.Sink{j},
	})
	t.Cleanup(o.Close)

	return &testServer{
		Server:  NewServer(o, client, j, metricsSvc, metricsHandler),
		client:  client,
		clock:   clock,
		journal: j,
		orch:    o,
		metrics: metricsSvc,
	}
}

func (s *testServer) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	// Use the server's router to serve the request, which is more robust.
	s.Router.ServeHTTP(rr, req)
	return rr
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) orchestrator.State {
	t.Helper()
	var state orchestrator.State
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	return state
}

func TestHealthCheckHandler(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, "GET", "/health")
	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Zero(t, server.client.HealthCalls, "plain liveness does not touch the backend")
}

func TestHealthCheckHandler_Backend(t *testing.T) {
	server := setupTestServer(t)

	t.Run("healthy backend", func(t *testing.T) {
		rr := server.do(t, "GET", "/health?backend=true")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"healthy"`)
	})

	t.Run("backend down", func(t *testing.T) {
		server.client.HealthFunc = func(ctx context.Context) (backend.Health, error) {
			return backend.Health{}, &backend.APIError{Op: "health", Kind: backend.ErrServiceUnavailable}
		}
		rr := server.do(t, "GET", "/health?backend=true")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "degraded")
	})
}

func TestListTeamsHandler(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, "GET", "/teams")
	require.Equal(t, http.StatusOK, rr.Code)

	var teams []backend.Team
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &teams))
	assert.Len(t, teams, 2)

	server.do(t, "GET", "/teams")
	assert.Equal(t, 1, server.client.ListTeamsCalls, "the team list is loaded once per session")
}

func TestListTeamsHandler_BackendDown(t *testing.T) {
	server := setupTestServer(t)
	server.client.ListTeamsFunc = func(ctx context.Context) ([]backend.Team, error) {
		return nil, &backend.APIError{Op: "list teams", Kind: backend.ErrServiceUnavailable}
	}

	rr := server.do(t, "GET", "/teams")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestSelectHandler(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, "POST", "/selection?home=Arsenal&away=Chelsea")
	require.Equal(t, http.StatusAccepted, rr.Code)
	state := decodeState(t, rr)
	assert.Equal(t, orchestrator.PhasePending, state.Phase)
	assert.Equal(t, selection.Selection{Home: "Arsenal", Away: "Chelsea"}, state.Selection)

	server.clock.Advance(300 * time.Millisecond)
	require.Eventually(t, func() bool {
		return server.orch.Snapshot().Phase == orchestrator.PhaseRevealing
	}, 2*time.Second, 2*time.Millisecond)
	server.clock.Advance(300 * time.Millisecond)

	state = decodeState(t, server.do(t, "GET", "/state"))
	assert.Equal(t, orchestrator.PhaseSettled, state.Phase)
	assert.True(t, state.RevealScore)
	require.NotNil(t, state.Result)
}

func TestSelectHandler_Wait(t *testing.T) {
	server := setupTestServer(t)

	done := make(chan *httptest.ResponseRecorder)
	go func() {
		req := httptest.NewRequest("POST", "/selection?home=Arsenal&away=Chelsea&wait=true", nil)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		done <- rr
	}()

	require.Eventually(t, func() bool {
		return server.orch.Snapshot().Phase == orchestrator.PhasePending
	}, 2*time.Second, 2*time.Millisecond)
	server.clock.Advance(300 * time.Millisecond)
	require.Eventually(t, func() bool {
		return server.orch.Snapshot().Phase == orchestrator.PhaseRevealing
	}, 2*time.Second, 2*time.Millisecond)
	server.clock.Advance(300 * time.Millisecond)

	select {
	case rr := <-done:
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, orchestrator.PhaseSettled, decodeState(t, rr).Phase)
	case <-time.After(2 * time.Second):
		t.Fatal("waiting selection request did not return")
	}
}

func TestSelectHandler_ClearSlot(t *testing.T) {
	server := setupTestServer(t)

	server.do(t, "POST", "/selection?home=Arsenal&away=Chelsea")
	rr := server.do(t, "POST", "/selection?home=Arsenal")

	state := decodeState(t, rr)
	assert.Equal(t, orchestrator.PhaseIdle, state.Phase)
	assert.Zero(t, server.clock.Pending())
	assert.Equal(t, 2.0, testutil.ToFloat64(server.metrics.SelectionsReceived))
}

func TestSelectHandler_WrongMethod(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, "GET", "/selection?home=Arsenal&away=Chelsea")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestDismissErrorHandler(t *testing.T) {
	server := setupTestServer(t)
	server.client.PredictMatchFunc = func(ctx context.Context, home, away string) (backend.MatchPrediction, error) {
		return backend.MatchPrediction{}, &backend.APIError{Op: "predict match", Status: 500, Kind: backend.ErrServiceUnavailable}
	}

	server.do(t, "POST", "/selection?home=Arsenal&away=Chelsea")
	server.clock.Advance(300 * time.Millisecond)
	require.Eventually(t, func() bool {
		return server.orch.Snapshot().Phase == orchestrator.PhaseFailed
	}, 2*time.Second, 2*time.Millisecond)
	assert.NotEmpty(t, server.orch.Snapshot().Err)

	rr := server.do(t, "POST", "/selection/dismiss")
	require.Equal(t, http.StatusOK, rr.Code)
	state := decodeState(t, rr)
	assert.Empty(t, state.Err)
	assert.Equal(t, orchestrator.PhaseFailed, state.Phase)
}

func TestHistoryHandler(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	require.NoError(t, server.journal.Record(ctx, orchestrator.Outcome{AttemptID: "a1", Phase: orchestrator.PhaseSettled}))
	require.NoError(t, server.journal.Record(ctx, orchestrator.Outcome{AttemptID: "a2", Phase: orchestrator.PhaseFailed}))

	t.Run("lists newest first", func(t *testing.T) {
		rr := server.do(t, "GET", "/history?limit=1")
		require.Equal(t, http.StatusOK, rr.Code)
		var entries []journal.Entry
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "a2", entries[0].AttemptID)
	})

	t.Run("rejects invalid limit", func(t *testing.T) {
		rr := server.do(t, "GET", "/history?limit=zero")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Error)
	})

	t.Run("gets a single attempt", func(t *testing.T) {
		rr := server.do(t, "GET", "/history/a1")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"attempt_id":"a1"`)
	})

	t.Run("unknown attempt", func(t *testing.T) {
		rr := server.do(t, "GET", "/history/nope")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	server := setupTestServer(t)

	server.do(t, "POST", "/selection?home=Arsenal&away=Chelsea")
	server.clock.Advance(300 * time.Millisecond)
	require.Eventually(t, func() bool {
		return server.orch.Snapshot().Phase == orchestrator.PhaseRevealing
	}, 2*time.Second, 2*time.Millisecond)

	rr := server.do(t, "GET", "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pitchside_attempts_started_total 1")
}
