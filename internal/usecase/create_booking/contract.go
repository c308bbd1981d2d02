package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/slotlock"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogRepository интерфейс справочника специалистов и услуг
type CatalogRepository interface {
	GetLink(ctx context.Context, id int64) (*domain.ProfessionalService, error)
	GetLinkByPair(ctx context.Context, professionalID, serviceID int64) (*domain.ProfessionalService, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
}

// SlotEngine движок расчета свободных слотов
type SlotEngine interface {
	LockedAvailableSlots(ctx context.Context, professionalID int64, durationMinutes int, date time.Time) ([]types.TimeString, error)
}

// SlotLocker сериализует попытки занять один и тот же слот
type SlotLocker interface {
	Lock(ctx context.Context, key string) (slotlock.Unlock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenIssuer выпускает одноразовый токен активации и его хеш для хранения
type TokenIssuer interface {
	Issue() (token string, hash string, err error)
}

// Metrics учет созданных и отклоненных бронирований
type Metrics interface {
	BookingCreated()
	BookingRejected(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
