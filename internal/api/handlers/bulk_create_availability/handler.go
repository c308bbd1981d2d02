package bulk_create_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректная дата (YYYY-MM-DD) или время (HH:MM)"
	msgInvalidInterval       = "время начала должно быть раньше времени окончания"
	msgProfessionalNotFound  = "специалист не найден"
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

// Handle POST /api/v1/admin/professionals/{professionalId}/availability/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("POST /admin/professionals/{id}/availability/bulk - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var req BulkCreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/professionals/{id}/availability/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(professionalID)
	if err != nil {
		h.logger.Warn("POST /admin/professionals/{id}/availability/bulk - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.service.BulkCreate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInterval):
			h.logger.Warn("POST /admin/professionals/{id}/availability/bulk - Invalid interval: %s-%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, availability.ErrProfessionalNotFound):
			h.logger.Warn("POST /admin/professionals/{id}/availability/bulk - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /admin/professionals/{id}/availability/bulk - Invalid request: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/professionals/{id}/availability/bulk - Failed to create templates: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/professionals/{id}/availability/bulk - Templates created: count=%d, professional_id=%d",
		result.Total, professionalID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
