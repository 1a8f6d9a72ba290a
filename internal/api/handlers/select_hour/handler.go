package select_hour

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "сессия не найдена"
	msgForbidden          = "доступ запрещен"
	msgMissingHour        = "не указан час"
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

// Handle PUT /api/v1/sessions/{sessionId}/hour
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SelectHourRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/hour - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Hour == nil {
		h.logger.Warn("PUT /sessions/{id}/hour - Missing hour: session_id=%s", sessionID)
		handlers.RespondBadRequest(w, msgMissingHour)
		return
	}

	result, err := h.service.SelectHour(r.Context(), sessionID, *req.Hour)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PUT /sessions/{id}/hour - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PUT /sessions/{id}/hour - Access denied: session_id=%s", sessionID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /sessions/{id}/hour - Failed to apply selection: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sessions/{id}/hour - Selection applied: session_id=%s, hour=%d, accepted=%t",
		sessionID, *req.Hour, result.Accepted)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromActionResult(result))
}
