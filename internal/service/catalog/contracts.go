package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogRepository специалисты, услуги и их связи
type CatalogRepository interface {
	CreateProfessional(ctx context.Context, p *domain.Professional) (*domain.Professional, error)
	GetProfessional(ctx context.Context, id int64) (*domain.Professional, error)
	DeleteProfessional(ctx context.Context, id int64) error
	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	UpdateServiceDuration(ctx context.Context, id int64, durationMinutes int) error
	CreateLink(ctx context.Context, professionalID, serviceID int64) (*domain.ProfessionalService, error)
	DeleteLinksByProfessional(ctx context.Context, professionalID int64) (int64, error)
}

// TemplateRepository удаление шаблонов специалиста
type TemplateRepository interface {
	DeleteByProfessional(ctx context.Context, professionalID int64) (int64, error)
}

// BookingRepository удаление бронирований при каскадном удалении
type BookingRepository interface {
	DeleteByProfessional(ctx context.Context, professionalID int64) (int64, error)
	DeleteByClient(ctx context.Context, clientID int64) (int64, error)
}

// ClientRepository удаление клиентов
type ClientRepository interface {
	Delete(ctx context.Context, id int64) error
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
