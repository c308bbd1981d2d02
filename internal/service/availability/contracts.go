package availability

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов доступности
type TemplateRepository interface {
	Create(ctx context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error)
	ListByProfessional(ctx context.Context, professionalID int64) ([]*domain.AvailabilityTemplate, error)
	ListActive(ctx context.Context, professionalID int64, weekday int) ([]*domain.AvailabilityTemplate, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TemplateStatus) error
}

// ProfessionalRepository проверка существования специалиста
type ProfessionalRepository interface {
	GetProfessional(ctx context.Context, id int64) (*domain.Professional, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
