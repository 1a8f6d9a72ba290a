package select_date

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
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle PUT /api/v1/sessions/{sessionId}/date
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		h.logger.Warn("PUT /sessions/{id}/date - Invalid date: session_id=%s, date=%q", sessionID, req.Date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.SelectDate(r.Context(), sessionID, date)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PUT /sessions/{id}/date - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PUT /sessions/{id}/date - Access denied: session_id=%s", sessionID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /sessions/{id}/date - Failed to apply selection: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sessions/{id}/date - Selection applied: session_id=%s, date=%s, accepted=%t",
		sessionID, date, result.Accepted)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromActionResult(result))
}
