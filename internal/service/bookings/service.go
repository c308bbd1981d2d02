package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Service сервис жизненного цикла бронирований: чтение, отмена, завершение
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только свои бронирования, специалист - бронирования к себе,
// администратор - любые.
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for %s=%d", id, principal.Role, principal.ID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !canView(booking, principal) {
		s.logger.Warn("GetByID: access denied for %s=%d to booking id=%d", principal.Role, principal.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// ListForClient история бронирований клиента
func (s *Service) ListForClient(ctx context.Context, clientID int64) (*models.BookingListResponse, error) {
	if clientID <= 0 {
		return nil, fmt.Errorf("%w: client id must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{ClientID: &clientID})
	if err != nil {
		s.logger.Error("ListForClient: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListForClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForClient: fetched %d bookings for client=%d", len(bookings), clientID)
	return models.FromDomainBookingList(bookings), nil
}

// ListForProfessional расписание специалиста; date опционален
func (s *Service) ListForProfessional(ctx context.Context, professionalID int64, date *time.Time) (*models.BookingListResponse, error) {
	if professionalID <= 0 {
		return nil, fmt.Errorf("%w: professional id must be positive", ErrInvalidInput)
	}

	filter := domain.BookingFilter{ProfessionalID: &professionalID}
	if date != nil {
		day := types.DateOnly(*date)
		filter.Date = &day
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListForProfessional: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: ListForProfessional - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование от имени клиента-владельца.
// Разрешено только для pending; после отмены время начала снова доступно.
func (s *Service) Cancel(ctx context.Context, bookingID int64, requesterClientID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by client=%d", bookingID, requesterClientID)

	return s.transition(ctx, "Cancel", bookingID, domain.StatusCancelled, func(b *domain.Booking) error {
		if b.ClientID != requesterClientID {
			return ErrAccessDenied
		}
		if !b.CanBeCancelled() {
			return ErrCannotCancel
		}
		return nil
	})
}

// MarkCompleted отмечает визит оказанным от имени специалиста, к которому записан клиент.
// Отмененное или уже завершенное бронирование завершить нельзя.
func (s *Service) MarkCompleted(ctx context.Context, bookingID int64, requesterProfessionalID int64) (*models.BookingResponse, error) {
	s.logger.Info("MarkCompleted: completing booking id=%d by professional=%d", bookingID, requesterProfessionalID)

	return s.transition(ctx, "MarkCompleted", bookingID, domain.StatusCompleted, func(b *domain.Booking) error {
		if b.ProfessionalID != requesterProfessionalID {
			return ErrAccessDenied
		}
		if !b.CanBeCompleted() {
			return ErrCannotComplete
		}
		return nil
	})
}

// transition переводит pending-бронирование в статус to после проверки check.
// Переход условный (WHERE status = pending), поэтому из двух гонящихся переходов
// успешен только один.
func (s *Service) transition(
	ctx context.Context,
	op string,
	bookingID int64,
	to domain.BookingStatus,
	check func(b *domain.Booking) error,
) (*models.BookingResponse, error) {
	var result *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, op, bookingID)
		if err != nil {
			return err
		}

		if err := check(booking); err != nil {
			s.logger.Warn("%s: booking id=%d rejected (status=%s): %v", op, bookingID, booking.Status, err)
			return err
		}

		now := s.timeProvider.Now().UTC()
		ok, err := s.bookingRepo.TransitionStatus(ctx, bookingID, domain.StatusPending, to, now)
		if err != nil {
			s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
		if !ok {
			if to == domain.StatusCancelled {
				return ErrCannotCancel
			}
			return ErrCannotComplete
		}

		booking.Status = to
		booking.UpdatedAt = now
		if to == domain.StatusCancelled {
			booking.CancelledAt = &now
		} else {
			booking.CompletedAt = &now
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.BookingTransition(string(to))
	s.logger.Info("%s: booking id=%d is now %s", op, bookingID, to)
	return models.FromDomainBooking(result), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func canView(b *domain.Booking, p domain.Principal) bool {
	switch p.Role {
	case domain.RoleAdministrator:
		return true
	case domain.RoleClient:
		return b.ClientID == p.ID
	case domain.RoleProfessional:
		return b.ProfessionalID == p.ID
	}
	return false
}
