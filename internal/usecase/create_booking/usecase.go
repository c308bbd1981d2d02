package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/slotlock"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const defaultLockTimeout = 5 * time.Second

// Причины отказа для метрик
const (
	reasonNotFound    = "not_found"
	reasonUnavailable = "slot_unavailable"
	reasonInvalid     = "invalid_input"
	reasonForbidden   = "forbidden"
)

// ErrClientConflict клиент с тем же телефоном создан параллельным запросом; запрос можно повторить
var ErrClientConflict = fmt.Errorf("create_booking: client was registered concurrently: %w", domain.ErrConflict)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	clientRepo  ClientRepository
	engine      SlotEngine
	locker      SlotLocker
	txManager   TransactionManager
	tokens      TokenIssuer
	metrics     Metrics
	logger      Logger
	lockTimeout time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	clientRepo ClientRepository,
	engine SlotEngine,
	locker SlotLocker,
	txManager TransactionManager,
	tokens TokenIssuer,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		clientRepo:  clientRepo,
		engine:      engine,
		locker:      locker,
		txManager:   txManager,
		tokens:      tokens,
		metrics:     metrics,
		logger:      logger,
		lockTimeout: defaultLockTimeout,
	}
}

// WithLockTimeout задает максимальное ожидание блокировки слота
func (uc *UseCase) WithLockTimeout(d time.Duration) *UseCase {
	if d > 0 {
		uc.lockTimeout = d
	}
	return uc
}

// Execute выполняет use case создания бронирования.
//
// Попытки занять один и тот же слот сериализуются блокировкой слота, а проверка
// доступности, поиск или создание клиента и вставка выполняются в одной
// сериализуемой транзакции. Уникальный индекс на (специалист, дата, начало)
// для pending/completed гарантирует, что из двух конкурентов выиграет один,
// а второй получит ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: principal=%s:%d, professionalService=%d, professional=%d, service=%d, date=%s, time=%s",
		req.Principal.Role, req.Principal.ID, req.ProfessionalServiceID, req.ProfessionalID, req.ServiceID,
		req.Date.Format(domain.DateFormat), req.StartTime)

	resp, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.BookingRejected(rejectionReason(err))
		return nil, err
	}

	uc.metrics.BookingCreated()
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := types.DateOnly(req.Date)

	// 2. Находим связь специалист-услуга
	link, err := uc.resolveLink(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Специалист может записывать только к себе
	if req.Principal.IsProfessional() && req.Principal.ID != link.ProfessionalID {
		uc.logger.Warn("CreateBooking: professional=%d cannot book into schedule of professional=%d",
			req.Principal.ID, link.ProfessionalID)
		return nil, ErrForbidden
	}

	// 4. Захватываем блокировку слота
	lockCtx, cancel := context.WithTimeout(ctx, uc.lockTimeout)
	defer cancel()

	unlock, err := uc.locker.Lock(lockCtx, slotlock.Key(link.ProfessionalID, date, req.StartTime))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to acquire slot lock: %v", err)
		return nil, fmt.Errorf("%w: failed to acquire slot lock: %w", ErrInternal, err)
	}
	defer unlock()

	var (
		result        *domain.Booking
		clientCreated bool
		token         *string
	)

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем текущую длительность услуги
		service, err := uc.catalogRepo.GetService(txCtx, link.ServiceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrProfessionalServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", link.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}

		// 5.2. Пересчитываем свободные слоты с блокировкой бронирований
		available, err := uc.engine.LockedAvailableSlots(txCtx, link.ProfessionalID, service.DurationMinutes, date)
		if err != nil {
			if errors.Is(err, slots.ErrInvalidDuration) {
				return ErrServiceDurationUnresolvable
			}
			uc.logger.Error("CreateBooking: failed to compute slots: %v", err)
			return fmt.Errorf("%w: failed to compute slots: %w", ErrInternal, err)
		}

		if !slots.Contains(available, req.StartTime) {
			uc.logger.Warn("CreateBooking: start=%s is not available for professional=%d on %s",
				req.StartTime, link.ProfessionalID, date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 5.3. Фиксируем время окончания по текущей длительности
		endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
		if err != nil {
			return ErrServiceDurationUnresolvable
		}

		// 5.4. Определяем клиента
		client, created, issued, err := uc.resolveClient(txCtx, req)
		if err != nil {
			return err
		}

		// 5.5. Сохраняем бронирование
		created2, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ClientID:              client.ID,
			ProfessionalServiceID: link.ID,
			ProfessionalID:        link.ProfessionalID,
			ServiceID:             link.ServiceID,
			BookingDate:           date,
			StartTime:             req.StartTime,
			EndTime:               endTime,
			Status:                domain.StatusPending,
		})
		if err != nil {
			if errors.Is(err, domain.ErrSlotUnavailable) {
				uc.logger.Warn("CreateBooking: slot taken concurrently: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created2
		clientCreated = created
		token = issued
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict: %v", err)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (client=%d, new=%t)",
		result.ID, result.ClientID, clientCreated)

	return &Response{
		ID:                    result.ID,
		ClientID:              result.ClientID,
		ProfessionalServiceID: result.ProfessionalServiceID,
		ProfessionalID:        result.ProfessionalID,
		ServiceID:             result.ServiceID,
		BookingDate:           result.BookingDate,
		StartTime:             result.StartTime,
		EndTime:               result.EndTime,
		Status:                string(result.Status),
		ClientCreated:         clientCreated,
		ActivationToken:       token,
		CreatedAt:             result.CreatedAt,
		UpdatedAt:             result.UpdatedAt,
	}, nil
}

// resolveLink находит связь по ID или по паре специалист-услуга
func (uc *UseCase) resolveLink(ctx context.Context, req *Request) (*domain.ProfessionalService, error) {
	var (
		link *domain.ProfessionalService
		err  error
	)

	if req.ProfessionalServiceID > 0 {
		link, err = uc.catalogRepo.GetLink(ctx, req.ProfessionalServiceID)
	} else {
		link, err = uc.catalogRepo.GetLinkByPair(ctx, req.ProfessionalID, req.ServiceID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateBooking: professional service not found: %v", err)
			return nil, ErrProfessionalServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get professional service: %v", err)
		return nil, fmt.Errorf("%w: failed to get professional service: %w", ErrInternal, err)
	}

	// Если переданы оба способа, они должны указывать на одну связь
	if (req.ProfessionalID != 0 && req.ProfessionalID != link.ProfessionalID) ||
		(req.ServiceID != 0 && req.ServiceID != link.ServiceID) {
		return nil, fmt.Errorf("%w: professionalServiceId does not match professionalId/serviceId", ErrInvalidInput)
	}

	return link, nil
}

// resolveClient возвращает клиента запроса. Для записи по телефону существующий
// клиент переиспользуется, иначе создается новый в статусе pending_activation.
func (uc *UseCase) resolveClient(ctx context.Context, req *Request) (*domain.Client, bool, *string, error) {
	if req.Principal.IsClient() {
		client, err := uc.clientRepo.GetByID(ctx, req.Principal.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("CreateBooking: client id=%d not found", req.Principal.ID)
				return nil, false, nil, ErrClientNotFound
			}
			return nil, false, nil, fmt.Errorf("%w: failed to get client: %w", ErrInternal, err)
		}
		return client, false, nil, nil
	}

	phone := domain.NormalizePhone(req.Client.Phone)

	existing, err := uc.clientRepo.GetByPhone(ctx, phone)
	if err == nil {
		uc.logger.Info("CreateBooking: reusing client id=%d for phone", existing.ID)
		return existing, false, nil, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil, fmt.Errorf("%w: failed to find client by phone: %w", ErrInternal, err)
	}

	token, hash, err := uc.tokens.Issue()
	if err != nil {
		return nil, false, nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	created, err := uc.clientRepo.Create(ctx, &domain.Client{
		Name:                strings.TrimSpace(req.Client.Name),
		Phone:               phone,
		Email:               req.Client.Email,
		Status:              domain.ClientPendingActivation,
		ActivationTokenHash: ptr.Ptr(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, false, nil, ErrClientConflict
		}
		return nil, false, nil, fmt.Errorf("%w: failed to create client: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created client id=%d pending activation", created.ID)
	return created, true, ptr.Ptr(token), nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrSlotUnavailable):
		return reasonUnavailable
	case errors.Is(err, domain.ErrNotFound):
		return reasonNotFound
	case errors.Is(err, domain.ErrForbidden):
		return reasonForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		return reasonInvalid
	}
	return "internal"
}
