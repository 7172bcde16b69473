package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	svc     Service
	logger  *zap.Logger
	timeout time.Duration
}

func NewServer(svc Service, timeout time.Duration, logger *zap.Logger) *Server {
	return &Server{svc: svc, timeout: timeout, logger: logger}
}

// Routes builds the JSON API under /v1 plus /healthz.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/pricing/quote", s.handleQuote)

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.handleListCustomers)
			r.Post("/", s.handleCreateCustomer)
			r.Get("/{id}", s.handleGetCustomer)
			r.Put("/{id}", s.handleUpdateCustomer)
			r.Delete("/{id}", s.handleDeleteCustomer)
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", s.handleListLeads)
			r.Post("/", s.handleCreateLead)
			r.Get("/{id}", s.handleGetLead)
			r.Put("/{id}", s.handleUpdateLead)
			r.Delete("/{id}", s.handleDeleteLead)
			r.Post("/{id}/convert", s.handleConvertLead)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", s.handleListJobs)
			r.Post("/", s.handleCreateJob)
			r.Get("/{id}", s.handleGetJob)
			r.Delete("/{id}", s.handleDeleteJob)
			r.Post("/{id}/measurements", s.handleAddMeasurement)
			r.Put("/{id}/measurements/{measurementID}", s.handleUpdateMeasurement)
			r.Delete("/{id}/measurements/{measurementID}", s.handleRemoveMeasurement)
			r.Put("/{id}/pricing", s.handleUpdatePricing)
			r.Put("/{id}/status", s.handleUpdateStatus)
			r.Get("/{id}/export.xlsx", s.handleExportJob)
		})

		r.Post("/webhooks/crm", s.handleCRMWebhook)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)
	})

	return r
}
