package get_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgNoPrincipal      = "требуется идентификация вызывающей стороны"
	msgNotVisible       = "бронирование недоступно для этой роли"
)

// Handler отдает одно бронирование. Клиент видит только свои записи,
// специалист только записи в своем расписании, администратор любые.
type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GetBooking: request without principal")
		handlers.RespondUnauthorized(w, msgNoPrincipal)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GetBooking: bad booking id from %s=%d: %v", principal.Role, principal.ID, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, principal)
	if err != nil {
		h.respondError(w, err, bookingID, principal)
		return
	}

	h.logger.Info("GetBooking: booking=%d shown to %s", bookingID, viewerScope(principal))
	handlers.RespondJSON(w, http.StatusOK, booking)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, bookingID int64, principal domain.Principal) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("GetBooking: booking=%d does not exist", bookingID)
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, domain.ErrForbidden):
		h.logger.Warn("GetBooking: booking=%d is outside %s", bookingID, viewerScope(principal))
		handlers.RespondForbidden(w, msgNotVisible)
	default:
		h.logger.Error("GetBooking: booking=%d lookup failed: %v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}

// viewerScope описывает, какие записи доступны вызывающей стороне
func viewerScope(p domain.Principal) string {
	switch {
	case p.IsClient():
		return fmt.Sprintf("bookings of client=%d", p.ID)
	case p.IsProfessional():
		return fmt.Sprintf("schedule of professional=%d", p.ID)
	default:
		return fmt.Sprintf("administrator=%d", p.ID)
	}
}
