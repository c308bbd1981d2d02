package deactivate_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

const (
	msgInvalidTemplateID = "некорректный ID шаблона"
	msgTemplateNotFound  = "шаблон доступности не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/availability/{templateId}/deactivate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	templateID, err := handlers.PathID(r, "templateId")
	if err != nil {
		h.logger.Warn("PATCH /admin/availability/{id}/deactivate - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	template, err := h.service.Deactivate(r.Context(), templateID)
	if err != nil {
		if errors.Is(err, availability.ErrTemplateNotFound) {
			h.logger.Warn("PATCH /admin/availability/{id}/deactivate - Template not found: template_id=%d", templateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)
			return
		}
		h.logger.Error("PATCH /admin/availability/{id}/deactivate - Failed to deactivate: template_id=%d, error=%v",
			templateID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /admin/availability/{id}/deactivate - Template deactivated: template_id=%d", templateID)
	handlers.RespondJSON(w, http.StatusOK, template)
}
