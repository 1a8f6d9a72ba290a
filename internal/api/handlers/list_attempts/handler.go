package list_attempts

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
)

const (
	msgNotFound        = "сессия не найдена"
	msgForbidden       = "доступ запрещен"
	msgJournalDisabled = "журнал попыток записи отключен"
)

type Handler struct {
	sessions SessionService
	attempts AttemptService
	logger   Logger
}

func NewHandler(sessions SessionService, attempts AttemptService, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		attempts: attempts,
		logger:   logger,
	}
}

// Handle GET /api/v1/sessions/{sessionId}/attempts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	// Проверяем, что сессия существует и принадлежит пользователю
	if _, err := h.sessions.Get(r.Context(), sessionID); err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/{id}/attempts - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /sessions/{id}/attempts - Access denied: session_id=%s", sessionID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /sessions/{id}/attempts - Failed to get session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	attempts, err := h.attempts.ListAttempts(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, bookings.ErrJournalDisabled) {
			h.logger.Warn("GET /sessions/{id}/attempts - Journal disabled")
			handlers.RespondNotFound(w, msgJournalDisabled)
			return
		}
		h.logger.Error("GET /sessions/{id}/attempts - Failed to list attempts: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /sessions/{id}/attempts - Attempts retrieved: session_id=%s, count=%d", sessionID, len(attempts))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(attempts))
}
