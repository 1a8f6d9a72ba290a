package list_providers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
)

const msgProvidersUnavailable = "список провайдеров недоступен"

type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providers, err := h.service.ListProviders(r.Context())
	if err != nil {
		if errors.Is(err, sessions.ErrProvidersUnavailable) {
			h.logger.Warn("GET /providers - Providers unavailable: %v", err)
			handlers.RespondBadGateway(w, msgProvidersUnavailable)
			return
		}
		h.logger.Error("GET /providers - Failed to list providers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers - Providers retrieved successfully: count=%d", len(providers))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(providers))
}
