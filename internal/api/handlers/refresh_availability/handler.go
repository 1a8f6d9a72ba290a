package refresh_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
)

const (
	msgNotFound  = "сессия не найдена"
	msgForbidden = "доступ запрещен"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/availability/refresh
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.service.RefreshAvailability(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/availability/refresh - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("POST /sessions/{id}/availability/refresh - Access denied: session_id=%s", sessionID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /sessions/{id}/availability/refresh - Failed to refresh availability: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/availability/refresh - Availability refresh requested: session_id=%s, accepted=%t", sessionID, result.Accepted)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromActionResult(result))
}
