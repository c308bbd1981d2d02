package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ClientIdentity данные клиента для записи без учетной записи (по телефону)
type ClientIdentity struct {
	Name  string
	Phone string
	Email *string
}

// Request модель запроса на создание бронирования.
// Услуга задается либо ProfessionalServiceID, либо парой ProfessionalID + ServiceID.
// Клиент берется из Principal (роль client) или из Client.
type Request struct {
	Principal             domain.Principal
	Client                *ClientIdentity
	ProfessionalServiceID int64
	ProfessionalID        int64
	ServiceID             int64
	Date                  time.Time        // Дата бронирования (без времени)
	StartTime             types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                    int64
	ClientID              int64
	ProfessionalServiceID int64
	ProfessionalID        int64
	ServiceID             int64
	BookingDate           time.Time
	StartTime             types.TimeString
	EndTime               types.TimeString
	Status                string

	// ClientCreated true, если клиент был создан этим запросом
	ClientCreated bool
	// ActivationToken выдается один раз при создании клиента; хранится только хеш
	ActivationToken *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
