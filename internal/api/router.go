// Package api собирает HTTP-маршруты сервиса записи.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	addAvailabilityHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/add_availability"
	bulkCreateAvailabilityHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/bulk_create_availability"
	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	deactivateAvailabilityHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/deactivate_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_client_bookings"
	getProfessionalBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_professional_bookings"
	getServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_service"
	listAvailabilityHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_availability"
	updateServiceDurationHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_service_duration"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	availabilityService "github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Deps зависимости маршрутов
type Deps struct {
	GetAvailableSlots *getAvailableSlotsUC.UseCase
	CreateBooking     *createBookingUC.UseCase
	Bookings          *bookingsService.Service
	Availability      *availabilityService.Service
	Catalog           *catalogService.Service

	// Metrics и RateLimiter опциональны
	Metrics     middleware.Metrics
	RateLimiter *middleware.RateLimiter

	Logger Logger
}

// NewRouter регистрирует маршруты /api/v1
func NewRouter(d Deps) *mux.Router {
	log := d.Logger

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(d.GetAvailableSlots, log)
	createBooking := createBookingHandler.NewHandler(d.CreateBooking, log)
	getBooking := getBookingHandler.NewHandler(d.Bookings, log)
	cancelBooking := cancelBookingHandler.NewHandler(d.Bookings, log)
	completeBooking := completeBookingHandler.NewHandler(d.Bookings, log)
	getClientBookings := getClientBookingsHandler.NewHandler(d.Bookings, log)
	getProfessionalBookings := getProfessionalBookingsHandler.NewHandler(d.Bookings, log)
	listAvailability := listAvailabilityHandler.NewHandler(d.Availability, log)
	addAvailability := addAvailabilityHandler.NewHandler(d.Availability, log)
	bulkCreateAvailability := bulkCreateAvailabilityHandler.NewHandler(d.Availability, log)
	deactivateAvailability := deactivateAvailabilityHandler.NewHandler(d.Availability, log)
	getService := getServiceHandler.NewHandler(d.Catalog, log)
	updateServiceDuration := updateServiceDurationHandler.NewHandler(d.Catalog, log)

	r := mux.NewRouter()
	r.Use(middleware.Recover(log))
	if d.Metrics != nil {
		r.Use(middleware.HTTPMetrics(d.Metrics))
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(log))

	// ============================================================
	// PUBLIC ROUTES (идентификация необязательна)
	// ============================================================

	api.HandleFunc("/professionals/{professionalId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)

	var create http.Handler = http.HandlerFunc(createBooking.Handle)
	if d.RateLimiter != nil {
		create = d.RateLimiter.Middleware(create)
	}
	api.Handle("/bookings", create).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	anyRole := middleware.RequireRole(domain.RoleClient, domain.RoleProfessional, domain.RoleAdministrator)
	clientOnly := middleware.RequireRole(domain.RoleClient)
	professionalOnly := middleware.RequireRole(domain.RoleProfessional)

	api.Handle("/bookings/{bookingId}", anyRole(http.HandlerFunc(getBooking.Handle))).Methods(http.MethodGet)
	api.Handle("/bookings/{bookingId}/cancel", clientOnly(http.HandlerFunc(cancelBooking.Handle))).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId}/complete", professionalOnly(http.HandlerFunc(completeBooking.Handle))).Methods(http.MethodPatch)
	api.Handle("/clients/{clientId}/bookings", anyRole(http.HandlerFunc(getClientBookings.Handle))).Methods(http.MethodGet)
	api.Handle("/professionals/{professionalId}/bookings", anyRole(http.HandlerFunc(getProfessionalBookings.Handle))).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdministrator))

	admin.HandleFunc("/professionals/{professionalId}/availability", listAvailability.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/professionals/{professionalId}/availability", addAvailability.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/professionals/{professionalId}/availability/bulk", bulkCreateAvailability.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/availability/{templateId}/deactivate", deactivateAvailability.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/services/{serviceId}/duration", updateServiceDuration.Handle).Methods(http.MethodPatch)

	return r
}
