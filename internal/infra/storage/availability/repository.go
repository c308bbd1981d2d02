package availability

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
)

var columns = []string{
	"id",
	"professional_id",
	"weekday",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий шаблонов доступности специалистов
type Repository struct {
	db      DBExecutor
	dialect sqlbuilder.Dialect
}

func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// Create сохраняет шаблон и заполняет ID и временные метки
func (r *Repository) Create(ctx context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TemplateActive
	}

	query, args, err := r.dialect.Builder().Insert("availability_templates").
		Columns("professional_id", "weekday", "start_time", "end_time", "status", "created_at", "updated_at").
		Values(t.ProfessionalID, t.Weekday, t.StartTime, t.EndTime, string(t.Status), t.CreatedAt, t.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID); err != nil {
		if sqlbuilder.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: id=%d", ErrProfessionalNotFound, t.ProfessionalID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return t, nil
}

// GetByID получает шаблон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().Select(columns...).
		From("availability_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTemplate(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrTemplateNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan template: %w", ErrScanRow, err)
	}

	return t, nil
}

// ListByProfessional возвращает все шаблоны специалиста (включая неактивные)
func (r *Repository) ListByProfessional(ctx context.Context, professionalID int64) ([]*domain.AvailabilityTemplate, error) {
	return r.list(ctx, "ListByProfessional", squirrel.Eq{"professional_id": professionalID})
}

// ListActive возвращает активные шаблоны специалиста на день недели
func (r *Repository) ListActive(ctx context.Context, professionalID int64, weekday int) ([]*domain.AvailabilityTemplate, error) {
	return r.list(ctx, "ListActive", squirrel.Eq{
		"professional_id": professionalID,
		"weekday":         weekday,
		"status":          string(domain.TemplateActive),
	})
}

// UpdateStatus меняет статус шаблона
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.TemplateStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().Update("availability_templates").
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrTemplateNotFound, id)
	}

	return nil
}

// DeleteByProfessional удаляет все шаблоны специалиста
func (r *Repository) DeleteByProfessional(ctx context.Context, professionalID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().Delete("availability_templates").
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByProfessional - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByProfessional - execute delete: %w", ErrExecQuery, err)
	}

	return result.RowsAffected()
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().Select(columns...).
		From("availability_templates").
		Where(where).
		OrderBy("weekday ASC", "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var templates []*domain.AvailabilityTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan template: %w", ErrScanRow, op, err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrExecQuery, op, err)
	}

	return templates, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*domain.AvailabilityTemplate, error) {
	var (
		t      domain.AvailabilityTemplate
		status string
	)

	if err := row.Scan(
		&t.ID,
		&t.ProfessionalID,
		&t.Weekday,
		&t.StartTime,
		&t.EndTime,
		&status,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = domain.TemplateStatus(status)
	return &t, nil
}
