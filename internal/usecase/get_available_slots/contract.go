package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CatalogRepository интерфейс справочника специалистов и услуг
type CatalogRepository interface {
	GetLinkByPair(ctx context.Context, professionalID, serviceID int64) (*domain.ProfessionalService, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// SlotEngine движок расчета свободных слотов
type SlotEngine interface {
	AvailableSlots(ctx context.Context, professionalID int64, durationMinutes int, date time.Time) ([]types.TimeString, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
