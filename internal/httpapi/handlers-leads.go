package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"glassquote/internal/models"
)

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.svc.ListLeads(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var in models.Lead
	if err := readJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	l, err := s.svc.CreateLead(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	l, err := s.svc.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleUpdateLead(w http.ResponseWriter, r *http.Request) {
	var in models.Lead
	if err := readJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	l, err := s.svc.UpdateLead(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteLead(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleConvertLead answers with the new customer.
func (s *Server) handleConvertLead(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.ConvertLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
