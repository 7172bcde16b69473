package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"glassquote/internal/models"
)

const crmLeadSource = "crm"

type crmEvent struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

type crmLead struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

// handleCRMWebhook turns CRM "lead_added" events into leads. Other event
// types are acknowledged and dropped.
func (s *Server) handleCRMWebhook(w http.ResponseWriter, r *http.Request) {
	var event crmEvent
	if err := readJSON(r, &event); err != nil {
		s.writeError(w, r, err)
		return
	}

	switch event.EventType {
	case "lead_added":
		var in crmLead
		if err := json.Unmarshal(event.Data, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lead payload"})
			return
		}

		notes := in.Note
		if in.ID != 0 {
			notes = "CRM #" + strconv.Itoa(in.ID) + " " + notes
		}
		lead, err := s.svc.CreateLead(r.Context(), models.Lead{
			Name:    in.Name,
			Phone:   in.Phone,
			Email:   in.Email,
			Address: in.Address,
			Source:  crmLeadSource,
			Notes:   notes,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, lead)

	default:
		s.logger.Debug("CRM event ignored", zap.String("event_type", event.EventType))
		w.WriteHeader(http.StatusOK)
	}
}
