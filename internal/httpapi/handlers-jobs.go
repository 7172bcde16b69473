package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"glassquote/internal/export"
	"glassquote/internal/models"
)

type quoteRequest struct {
	Measurements []models.Measurement `json:"measurements"`
	TaxRate      *float64             `json:"taxRate,omitempty"`
	Discount     float64              `json:"discount"`
}

type statusRequest struct {
	Status models.JobStatus `json:"status"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.svc.Quote(r.Context(), req.Measurements, req.TaxRate, req.Discount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.svc.ListJobs(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var in models.NewJob
	if err := readJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.svc.CreateJob(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.svc.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteJob(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddMeasurement(w http.ResponseWriter, r *http.Request) {
	var m models.Measurement
	if err := readJSON(r, &m); err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.svc.AddMeasurement(r.Context(), chi.URLParam(r, "id"), m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) handleUpdateMeasurement(w http.ResponseWriter, r *http.Request) {
	var m models.Measurement
	if err := readJSON(r, &m); err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.svc.UpdateMeasurement(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "measurementID"), m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleRemoveMeasurement(w http.ResponseWriter, r *http.Request) {
	job, err := s.svc.RemoveMeasurement(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "measurementID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleUpdatePricing(w http.ResponseWriter, r *http.Request) {
	var in models.PricingInput
	if err := readJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.svc.UpdatePricing(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleExportJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.svc.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	buf, err := export.JobQuote(job)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=quote-%s.xlsx", job.JobNumber))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
