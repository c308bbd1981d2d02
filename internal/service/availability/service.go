package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Service управление еженедельной доступностью специалистов
type Service struct {
	templates          TemplateRepository
	professionals      ProfessionalRepository
	txManager          TransactionManager
	defaultGranularity int
	logger             Logger
}

// NewService создает сервис; granularityMinutes - шаг BulkCreate по умолчанию
func NewService(
	templates TemplateRepository,
	professionals ProfessionalRepository,
	txManager TransactionManager,
	granularityMinutes int,
	logger Logger,
) *Service {
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultBulkGranularityMinutes
	}
	return &Service{
		templates:          templates,
		professionals:      professionals,
		txManager:          txManager,
		defaultGranularity: granularityMinutes,
		logger:             logger,
	}
}

// AddTemplate добавляет активное окно для специалиста на день недели
func (s *Service) AddTemplate(ctx context.Context, req *models.AddTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("AddTemplate: professional=%d, weekday=%d, %s-%s",
		req.ProfessionalID, req.Weekday, req.StartTime, req.EndTime)

	if !types.IsValidWeekday(req.Weekday) {
		return nil, ErrInvalidWeekday
	}
	if err := validateInterval(req.StartTime, req.EndTime); err != nil {
		s.logger.Warn("AddTemplate: invalid interval %s-%s: %v", req.StartTime, req.EndTime, err)
		return nil, err
	}

	if err := s.ensureProfessional(ctx, req.ProfessionalID); err != nil {
		return nil, err
	}

	created, err := s.templates.Create(ctx, &domain.AvailabilityTemplate{
		ProfessionalID: req.ProfessionalID,
		Weekday:        req.Weekday,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Status:         domain.TemplateActive,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("AddTemplate: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddTemplate: created template id=%d", created.ID)
	return models.FromDomainTemplate(created), nil
}

// BulkCreate режет диапазон [start, end) даты на целые куски по granularity
// и создает по окну на каждый кусок для дня недели этой даты. Неполный хвост отбрасывается.
// Все окна создаются в одной транзакции.
func (s *Service) BulkCreate(ctx context.Context, req *models.BulkCreateRequest) (*models.TemplateListResponse, error) {
	granularity := req.GranularityMinutes
	if granularity == 0 {
		granularity = s.defaultGranularity
	}

	s.logger.Info("BulkCreate: professional=%d, date=%s, %s-%s, granularity=%d",
		req.ProfessionalID, types.FormatDate(req.Date), req.StartTime, req.EndTime, granularity)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if err := validateInterval(req.StartTime, req.EndTime); err != nil {
		s.logger.Warn("BulkCreate: invalid interval %s-%s: %v", req.StartTime, req.EndTime, err)
		return nil, err
	}

	pieces, err := Decompose(req.StartTime, req.EndTime, granularity)
	if err != nil {
		return nil, err
	}

	if err := s.ensureProfessional(ctx, req.ProfessionalID); err != nil {
		return nil, err
	}

	weekday := types.WeekdayOf(req.Date)
	created := make([]*domain.AvailabilityTemplate, 0, len(pieces))

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, p := range pieces {
			t, err := s.templates.Create(ctx, &domain.AvailabilityTemplate{
				ProfessionalID: req.ProfessionalID,
				Weekday:        weekday,
				StartTime:      p.Start,
				EndTime:        p.End,
				Status:         domain.TemplateActive,
			})
			if err != nil {
				return err
			}
			created = append(created, t)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("BulkCreate: failed to create templates: %v", err)
		return nil, fmt.Errorf("%w: BulkCreate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BulkCreate: created %d templates for professional=%d weekday=%d",
		len(created), req.ProfessionalID, weekday)
	return models.FromDomainTemplateList(created), nil
}

// Deactivate выключает окно; оно перестает участвовать в расчете слотов.
// Повторная деактивация не считается ошибкой.
func (s *Service) Deactivate(ctx context.Context, templateID int64) (*models.TemplateResponse, error) {
	s.logger.Info("Deactivate: template id=%d", templateID)

	var updated *domain.AvailabilityTemplate
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.templates.UpdateStatus(ctx, templateID, domain.TemplateInactive); err != nil {
			return err
		}
		t, err := s.templates.GetByID(ctx, templateID)
		if err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Deactivate: template id=%d not found", templateID)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("Deactivate: repository error for template id=%d: %v", templateID, err)
		return nil, fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplate(updated), nil
}

// ListTemplates возвращает все окна специалиста, включая неактивные
func (s *Service) ListTemplates(ctx context.Context, professionalID int64) (*models.TemplateListResponse, error) {
	if err := s.ensureProfessional(ctx, professionalID); err != nil {
		return nil, err
	}

	templates, err := s.templates.ListByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("ListTemplates: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: ListTemplates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplateList(templates), nil
}

// TemplatesFor активные окна специалиста на день недели
func (s *Service) TemplatesFor(ctx context.Context, professionalID int64, weekday int) ([]*domain.AvailabilityTemplate, error) {
	if !types.IsValidWeekday(weekday) {
		return nil, ErrInvalidWeekday
	}

	templates, err := s.templates.ListActive(ctx, professionalID, weekday)
	if err != nil {
		return nil, fmt.Errorf("%w: TemplatesFor - repository error: %v", ErrInternal, err)
	}
	return templates, nil
}

func (s *Service) ensureProfessional(ctx context.Context, professionalID int64) error {
	if _, err := s.professionals.GetProfessional(ctx, professionalID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("professional id=%d not found", professionalID)
			return ErrProfessionalNotFound
		}
		return fmt.Errorf("%w: get professional: %v", ErrInternal, err)
	}
	return nil
}

func validateInterval(start, end types.TimeString) error {
	if start.Validate() != nil || end.Validate() != nil {
		return ErrInvalidTime
	}
	if !start.IsBefore(end) {
		return ErrInvalidInterval
	}
	return nil
}
