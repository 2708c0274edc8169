package http

import (
	"net/http"

	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/http/handlers"
	"github.com/mauv0809/pitchside/internal/journal"
	"github.com/mauv0809/pitchside/internal/metrics"
)

type Server struct {
	Orchestrator   handlers.Orchestrator
	Backend        backend.BackendClient
	Journal        journal.Journal
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Router         *http.ServeMux
}
