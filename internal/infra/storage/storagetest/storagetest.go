// Package storagetest поднимает sqlite в памяти со схемой для тестов репозиториев и сервисов.
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-SalonBooking/pkg/sqlbuilder"
)

var dbSeq int64

// NewSQLite возвращает мигрированную базу в памяти, закрываемую по окончании теста
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on",
		name, atomic.AddInt64(&dbSeq, 1))

	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.NewMigrator(db, sqlbuilder.DialectSQLite, nil).Up(context.Background())
	require.NoError(t, err)

	return db
}

// Seed минимальный набор данных: специалист, услуга и их связь
type Seed struct {
	ProfessionalID        int64
	ServiceID             int64
	ProfessionalServiceID int64
}

// SeedCatalog создает специалиста, услугу с заданной длительностью и связь между ними
func SeedCatalog(t *testing.T, db *sql.DB, durationMinutes int) Seed {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	var s Seed
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO professionals (name, phone, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`,
		"Ana", "5550001", now, now).Scan(&s.ProfessionalID))
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO services (name, price, duration_minutes, created_at, updated_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		"Haircut", 50.0, durationMinutes, now, now).Scan(&s.ServiceID))
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO professional_services (professional_id, service_id, created_at) VALUES (?, ?, ?) RETURNING id`,
		s.ProfessionalID, s.ServiceID, now).Scan(&s.ProfessionalServiceID))

	return s
}

// SeedTemplate добавляет активный шаблон доступности
func SeedTemplate(t *testing.T, db *sql.DB, professionalID int64, weekday int, start, end string) int64 {
	t.Helper()
	now := time.Now().UTC()

	var id int64
	require.NoError(t, db.QueryRowContext(context.Background(),
		`INSERT INTO availability_templates (professional_id, weekday, start_time, end_time, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		professionalID, weekday, start, end, string(domain.TemplateActive), now, now).Scan(&id))
	return id
}

// Monday понедельник, используемый в тестах как "ближайший понедельник"
func Monday() time.Time {
	return time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
}
