package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ganot/enablement-desk/internal/desk"
	"github.com/ganot/enablement-desk/internal/domain/plan"
	"github.com/ganot/enablement-desk/internal/domain/roster"
)

// APIError is the JSON error body.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	status       int
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// MapError maps domain errors to API errors. Unknown errors become INTERNAL.
func MapError(err error) *APIError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, plan.ErrPhaseNotFound):
		return &APIError{Code: "PHASE_NOT_FOUND", Message: err.Error(), RecoveryHint: "List phases for valid IDs", status: http.StatusNotFound}
	case errors.Is(err, plan.ErrActivityOutOfRange):
		return &APIError{Code: "ACTIVITY_OUT_OF_RANGE", Message: err.Error(), RecoveryHint: "Use a zero-based index below the activity count", status: http.StatusUnprocessableEntity}
	case errors.Is(err, plan.ErrInvalidDueDate):
		return &APIError{Code: "INVALID_DUE_DATE", Message: err.Error(), RecoveryHint: "Use YYYY-MM-DD or an empty string", status: http.StatusUnprocessableEntity}
	case errors.Is(err, plan.ErrInvalidMutation):
		return &APIError{Code: "INVALID_MUTATION", Message: err.Error(), RecoveryHint: "Send exactly one of completed or due_date", status: http.StatusBadRequest}
	case errors.Is(err, roster.ErrMalformed):
		return &APIError{Code: "MALFORMED_ROSTER", Message: roster.FormatHint, status: http.StatusUnprocessableEntity}
	case errors.Is(err, desk.ErrBusy):
		return &APIError{Code: "ASSISTANT_BUSY", Message: err.Error(), RecoveryHint: "Wait for the reply or cancel the in-flight request", status: http.StatusConflict}
	case errors.Is(err, desk.ErrEmptyPrompt):
		return &APIError{Code: "EMPTY_PROMPT", Message: err.Error(), status: http.StatusBadRequest}
	default:
		return &APIError{Code: "INTERNAL", Message: "internal error", status: http.StatusInternalServerError}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	apiErr := MapError(err)
	writeJSON(w, apiErr.status, map[string]*APIError{"error": apiErr})
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]*APIError{"error": {Code: "BAD_REQUEST", Message: message}})
}
