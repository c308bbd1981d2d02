package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/sqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var columns = []string{
	"id",
	"client_id",
	"professional_service_id",
	"professional_id",
	"service_id",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"cancelled_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db      DBExecutor
	dialect sqlbuilder.Dialect
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Второе активное бронирование того же специалиста на ту же дату и время
// отсекается уникальным индексом и возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	query, args, err := r.dialect.Builder().Insert("bookings").
		Columns(
			"client_id",
			"professional_service_id",
			"professional_id",
			"service_id",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			booking.ClientID,
			booking.ProfessionalServiceID,
			booking.ProfessionalID,
			booking.ServiceID,
			types.FormatDate(booking.BookingDate),
			booking.StartTime,
			booking.EndTime,
			string(booking.Status),
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID)
	if err != nil {
		switch {
		case sqlbuilder.IsUniqueViolation(err):
			return nil, fmt.Errorf("%w: professional=%d date=%s start=%s",
				ErrSlotTaken, booking.ProfessionalID, types.FormatDate(booking.BookingDate), booking.StartTime)
		case sqlbuilder.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: %v", ErrReferenceNotFound, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.dialect.Builder().Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})
	if r.dialect.SupportsRowLocks() && dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List возвращает бронирования по фильтру, отсортированные по дате и времени начала.
// При ForUpdate внутри транзакции postgres блокирует выбранные строки.
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.dialect.Builder().Select(columns...).
		From("bookings").
		OrderBy("booking_date ASC", "start_time ASC", "id ASC")

	if filter.ProfessionalID != nil {
		builder = builder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}
	if filter.ClientID != nil {
		builder = builder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"booking_date": types.FormatDate(*filter.Date)})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		builder = builder.Where(squirrel.Eq{"status": statuses})
	}
	if filter.ForUpdate && r.dialect.SupportsRowLocks() && dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrExecQuery, err)
	}

	return bookings, nil
}

// TransitionStatus переводит бронирование из статуса from в статус to.
// Возвращает false, если бронирования в статусе from уже нет (конкурентный переход).
func (r *Repository) TransitionStatus(ctx context.Context, id int64, from, to domain.BookingStatus, at time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.dialect.Builder().Update("bookings").
		Set("status", string(to)).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "status": string(from)})

	switch to {
	case domain.StatusCancelled:
		builder = builder.Set("cancelled_at", at)
	case domain.StatusCompleted:
		builder = builder.Set("completed_at", at)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if sqlbuilder.IsUniqueViolation(err) {
			return false, fmt.Errorf("%w: booking=%d", ErrSlotTaken, id)
		}
		return false, fmt.Errorf("%w: TransitionStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: TransitionStatus - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// DeleteByProfessional удаляет все бронирования специалиста
func (r *Repository) DeleteByProfessional(ctx context.Context, professionalID int64) (int64, error) {
	return r.deleteWhere(ctx, "DeleteByProfessional", squirrel.Eq{"professional_id": professionalID})
}

// DeleteByClient удаляет все бронирования клиента
func (r *Repository) DeleteByClient(ctx context.Context, clientID int64) (int64, error) {
	return r.deleteWhere(ctx, "DeleteByClient", squirrel.Eq{"client_id": clientID})
}

func (r *Repository) deleteWhere(ctx context.Context, op string, where squirrel.Eq) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().Delete("bookings").Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %w", ErrExecQuery, op, err)
	}

	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking                  domain.Booking
		status                   string
		cancelledAt, completedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ProfessionalServiceID,
		&booking.ProfessionalID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&status,
		&cancelledAt,
		&completedAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BookingDate = types.DateOnly(booking.BookingDate)
	booking.Status = domain.BookingStatus(status)
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	if completedAt.Valid {
		booking.CompletedAt = &completedAt.Time
	}

	return &booking, nil
}
