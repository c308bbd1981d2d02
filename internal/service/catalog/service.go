package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

// Service администрирование справочников салона
type Service struct {
	catalog   CatalogRepository
	templates TemplateRepository
	bookings  BookingRepository
	clients   ClientRepository
	txManager TransactionManager
	logger    Logger
}

func NewService(
	catalog CatalogRepository,
	templates TemplateRepository,
	bookings BookingRepository,
	clients ClientRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		catalog:   catalog,
		templates: templates,
		bookings:  bookings,
		clients:   clients,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateProfessional регистрирует специалиста
func (s *Service) CreateProfessional(ctx context.Context, req *models.CreateProfessionalRequest) (*models.ProfessionalResponse, error) {
	name := strings.TrimSpace(req.Name)
	phone := domain.NormalizePhone(req.Phone)

	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is required (max %d chars)", ErrInvalidInput, domain.MaxNameLength)
	}
	if len(phone) < domain.MinPhoneDigits || len(phone) > domain.MaxPhoneLength {
		return nil, fmt.Errorf("%w: invalid phone", ErrInvalidInput)
	}

	p, err := s.catalog.CreateProfessional(ctx, &domain.Professional{Name: name, Phone: phone, Email: req.Email})
	if err != nil {
		s.logger.Error("CreateProfessional: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateProfessional - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateProfessional: created professional id=%d", p.ID)
	return models.FromDomainProfessional(p), nil
}

// CreateService регистрирует услугу
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is required (max %d chars)", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if err := validateDuration(req.DurationMinutes); err != nil {
		return nil, err
	}

	svc, err := s.catalog.CreateService(ctx, &domain.Service{
		Name:            name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d duration=%d", svc.ID, svc.DurationMinutes)
	return models.FromDomainService(svc), nil
}

// LinkService отмечает, что специалист оказывает услугу
func (s *Service) LinkService(ctx context.Context, professionalID, serviceID int64) (*models.LinkResponse, error) {
	if _, err := s.catalog.GetProfessional(ctx, professionalID); err != nil {
		return nil, s.mapNotFound("LinkService", err, ErrProfessionalNotFound)
	}
	if _, err := s.catalog.GetService(ctx, serviceID); err != nil {
		return nil, s.mapNotFound("LinkService", err, ErrServiceNotFound)
	}

	link, err := s.catalog.CreateLink(ctx, professionalID, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrAlreadyLinked
		}
		s.logger.Error("LinkService: repository error: %v", err)
		return nil, fmt.Errorf("%w: LinkService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("LinkService: professional=%d now offers service=%d (link id=%d)", professionalID, serviceID, link.ID)
	return models.FromDomainLink(link), nil
}

// GetService возвращает услугу с текущей длительностью
func (s *Service) GetService(ctx context.Context, serviceID int64) (*models.ServiceResponse, error) {
	svc, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		return nil, s.mapNotFound("GetService", err, ErrServiceNotFound)
	}
	return models.FromDomainService(svc), nil
}

// SetServiceDuration меняет длительность услуги.
// Новая длительность влияет на будущий расчет слотов; endTime существующих бронирований не меняется.
func (s *Service) SetServiceDuration(ctx context.Context, serviceID int64, durationMinutes int) error {
	if err := validateDuration(durationMinutes); err != nil {
		return err
	}

	if err := s.catalog.UpdateServiceDuration(ctx, serviceID, durationMinutes); err != nil {
		return s.mapNotFound("SetServiceDuration", err, ErrServiceNotFound)
	}

	s.logger.Info("SetServiceDuration: service=%d duration=%d", serviceID, durationMinutes)
	return nil
}

// DeleteProfessional удаляет специалиста вместе с его бронированиями, связями и шаблонами
func (s *Service) DeleteProfessional(ctx context.Context, professionalID int64) error {
	s.logger.Info("DeleteProfessional: professional=%d", professionalID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.catalog.GetProfessional(ctx, professionalID); err != nil {
			return err
		}

		bookings, err := s.bookings.DeleteByProfessional(ctx, professionalID)
		if err != nil {
			return err
		}
		links, err := s.catalog.DeleteLinksByProfessional(ctx, professionalID)
		if err != nil {
			return err
		}
		templates, err := s.templates.DeleteByProfessional(ctx, professionalID)
		if err != nil {
			return err
		}
		if err := s.catalog.DeleteProfessional(ctx, professionalID); err != nil {
			return err
		}

		s.logger.Info("DeleteProfessional: removed %d bookings, %d links, %d templates", bookings, links, templates)
		return nil
	})
	if err != nil {
		return s.mapNotFound("DeleteProfessional", err, ErrProfessionalNotFound)
	}

	return nil
}

// DeleteClient удаляет клиента вместе с его бронированиями
func (s *Service) DeleteClient(ctx context.Context, clientID int64) error {
	s.logger.Info("DeleteClient: client=%d", clientID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		removed, err := s.bookings.DeleteByClient(ctx, clientID)
		if err != nil {
			return err
		}
		if err := s.clients.Delete(ctx, clientID); err != nil {
			return err
		}
		s.logger.Info("DeleteClient: removed %d bookings", removed)
		return nil
	})
	if err != nil {
		return s.mapNotFound("DeleteClient", err, ErrClientNotFound)
	}

	return nil
}

func (s *Service) mapNotFound(op string, err error, notFound error) error {
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("%s: %v", op, err)
		return notFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateDuration(minutes int) error {
	if minutes < domain.MinServiceDurationMinutes || minutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be in %d..%d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}
