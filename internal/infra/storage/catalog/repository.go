package catalog

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

// Repository репозиторий справочников: специалисты, услуги и связи между ними
type Repository struct {
	db      DBExecutor
	dialect sqlbuilder.Dialect
}

func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// ============================================================
// Professionals
// ============================================================

func (r *Repository) CreateProfessional(ctx context.Context, p *domain.Professional) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query, args, err := r.dialect.Builder().Insert("professionals").
		Columns("name", "phone", "email", "created_at", "updated_at").
		Values(p.Name, p.Phone, p.Email, p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateProfessional - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateProfessional - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

func (r *Repository) GetProfessional(ctx context.Context, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().
		Select("id", "name", "phone", "email", "created_at", "updated_at").
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - build select query: %v", ErrBuildQuery, err)
	}

	var (
		p     domain.Professional
		email sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Phone, &email, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrProfessionalNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - scan: %w", ErrScanRow, err)
	}
	if email.Valid {
		p.Email = &email.String
	}

	return &p, nil
}

// DeleteProfessional удаляет специалиста. Зависимые строки удаляются сервисом явно,
// внешние ключи ON DELETE CASCADE страхуют прямые удаления.
func (r *Repository) DeleteProfessional(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "DeleteProfessional", "professionals", id, ErrProfessionalNotFound)
}

// ============================================================
// Services
// ============================================================

func (r *Repository) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	query, args, err := r.dialect.Builder().Insert("services").
		Columns("name", "description", "price", "duration_minutes", "created_at", "updated_at").
		Values(s.Name, s.Description, s.Price, s.DurationMinutes, s.CreatedAt, s.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %w", ErrExecQuery, err)
	}

	return s, nil
}

func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().
		Select("id", "name", "description", "price", "duration_minutes", "created_at", "updated_at").
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s           domain.Service
		description sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.Name, &description, &s.Price, &s.DurationMinutes, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan: %w", ErrScanRow, err)
	}
	if description.Valid {
		s.Description = &description.String
	}

	return &s, nil
}

// UpdateServiceDuration меняет длительность услуги. Уже созданные бронирования не затрагиваются.
func (r *Repository) UpdateServiceDuration(ctx context.Context, id int64, durationMinutes int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().Update("services").
		Set("duration_minutes", durationMinutes).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateServiceDuration - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateServiceDuration - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateServiceDuration - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
	}

	return nil
}

// ============================================================
// Professional services
// ============================================================

// CreateLink связывает специалиста с услугой
func (r *Repository) CreateLink(ctx context.Context, professionalID, serviceID int64) (*domain.ProfessionalService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	link := &domain.ProfessionalService{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		CreatedAt:      time.Now().UTC(),
	}

	query, args, err := r.dialect.Builder().Insert("professional_services").
		Columns("professional_id", "service_id", "created_at").
		Values(link.ProfessionalID, link.ServiceID, link.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLink - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&link.ID); err != nil {
		switch {
		case sqlbuilder.IsUniqueViolation(err):
			return nil, fmt.Errorf("%w: professional=%d service=%d", ErrLinkExists, professionalID, serviceID)
		case sqlbuilder.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: professional=%d service=%d", ErrLinkNotFound, professionalID, serviceID)
		}
		return nil, fmt.Errorf("%w: CreateLink - execute insert: %w", ErrExecQuery, err)
	}

	return link, nil
}

// GetLink получает связь по её ID
func (r *Repository) GetLink(ctx context.Context, id int64) (*domain.ProfessionalService, error) {
	return r.getLink(ctx, "GetLink", squirrel.Eq{"id": id})
}

// GetLinkByPair получает связь по паре специалист-услуга
func (r *Repository) GetLinkByPair(ctx context.Context, professionalID, serviceID int64) (*domain.ProfessionalService, error) {
	return r.getLink(ctx, "GetLinkByPair", squirrel.Eq{
		"professional_id": professionalID,
		"service_id":      serviceID,
	})
}

// DeleteLinksByProfessional удаляет все связи специалиста
func (r *Repository) DeleteLinksByProfessional(ctx context.Context, professionalID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().Delete("professional_services").
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteLinksByProfessional - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteLinksByProfessional - execute delete: %w", ErrExecQuery, err)
	}

	return result.RowsAffected()
}

func (r *Repository) getLink(ctx context.Context, op string, where squirrel.Eq) (*domain.ProfessionalService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().
		Select("id", "professional_id", "service_id", "created_at").
		From("professional_services").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var link domain.ProfessionalService
	err = executor.QueryRowContext(ctx, query, args...).Scan(&link.ID, &link.ProfessionalID, &link.ServiceID, &link.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan: %w", ErrScanRow, op, err)
	}

	return &link, nil
}

func (r *Repository) deleteByID(ctx context.Context, op, table string, id int64, notFound error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute delete: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", notFound, id)
	}

	return nil
}
