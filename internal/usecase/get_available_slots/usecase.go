package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для получения свободных времен начала услуги у специалиста
type UseCase struct {
	catalogRepo CatalogRepository
	engine      SlotEngine
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	engine SlotEngine,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		engine:      engine,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Шаблоны и бронирования читаются в одной read-only транзакции, чтобы
// расчет видел согласованный снимок.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, service=%d, date=%s",
		req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := types.DateOnly(req.Date)

	var (
		service *domain.Service
		starts  []types.TimeString
	)

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 2. Проверяем, что специалист оказывает услугу
		if _, err := uc.catalogRepo.GetLinkByPair(txCtx, req.ProfessionalID, req.ServiceID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("GetAvailableSlots: professional=%d does not offer service=%d",
					req.ProfessionalID, req.ServiceID)
				return ErrProfessionalServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get professional service: %v", err)
			return fmt.Errorf("%w: failed to get professional service: %v", ErrInternal, err)
		}

		// 3. Получаем текущую длительность услуги
		svc, err := uc.catalogRepo.GetService(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrProfessionalServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		service = svc

		// 4. Считаем свободные времена начала
		starts, err = uc.engine.AvailableSlots(txCtx, req.ProfessionalID, svc.DurationMinutes, date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
			return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. Формируем ответ
	slots := make([]domain.AvailableSlot, 0, len(starts))
	for _, start := range starts {
		end, err := start.AddMinutes(service.DurationMinutes)
		if err != nil {
			continue
		}
		slots = append(slots, domain.AvailableSlot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: service.DurationMinutes,
		})
	}

	uc.logger.Info("GetAvailableSlots: found %d available slots", len(slots))

	return &Response{
		Date:            date,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}
