package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "не указан провайдер или некорректная дата"
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

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /sessions - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	session, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, sessions.ErrInvalidInput) {
			h.logger.Warn("POST /sessions - Invalid input: provider_id=%q", req.ProviderID)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /sessions - Failed to create session: provider_id=%s, error=%v", req.ProviderID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /sessions - Session created successfully: session_id=%s, provider_id=%s",
		session.ID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromSession(session))
}
