package http

import (
	"net/http"

	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/http/handlers"
	"github.com/mauv0809/pitchside/internal/journal"
	"github.com/mauv0809/pitchside/internal/metrics"
)

func NewServer(o handlers.Orchestrator, client backend.BackendClient, j journal.Journal, metricsSvc metrics.Metrics, metricsHandler http.Handler) *Server {
	server := &Server{
		Orchestrator:   o,
		Backend:        client,
		Journal:        j,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(s.Backend), paramsMiddleware))
	s.Router.Handle("GET /state", Chain(handlers.StateHandler(s.Orchestrator), paramsMiddleware))
	s.Router.Handle("GET /teams", Chain(handlers.ListTeamsHandler(s.Orchestrator), paramsMiddleware))
	s.Router.Handle("POST /selection", Chain(handlers.SelectHandler(s.Orchestrator, s.Metrics), paramsMiddleware))
	s.Router.Handle("POST /selection/dismiss", Chain(handlers.DismissErrorHandler(s.Orchestrator), paramsMiddleware))
	s.Router.Handle("GET /history", Chain(handlers.HistoryHandler(s.Journal), paramsMiddleware))
	s.Router.Handle("GET /history/{id}", Chain(handlers.AttemptHandler(s.Journal), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
