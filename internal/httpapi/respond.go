package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"glassquote/internal/jobnumber"
	"glassquote/internal/models"
	"glassquote/internal/pricing"
	"glassquote/internal/service"
)

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid request body")

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: empty body", errBadBody)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// writeError maps workflow errors to status codes. Anything unrecognized is
// logged and reported as a storage failure.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, errBadBody), errors.Is(err, pricing.ErrNotFinite):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrJobNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrLeadNotFound),
		errors.Is(err, service.ErrMeasurementNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrJobClosed),
		errors.Is(err, service.ErrCustomerInUse),
		errors.Is(err, service.ErrLeadConverted):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, pricing.ErrEmptyRuleSet),
		errors.Is(err, jobnumber.ErrSequenceExhausted):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))

		msg := "failed to save"
		if r.Method == http.MethodGet {
			msg = "failed to load"
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msg})
	}
}
