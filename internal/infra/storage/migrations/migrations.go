package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/sqlbuilder"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Migration одна SQL-миграция из встроенных файлов
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator применяет встроенные миграции и ведет таблицу schema_migrations
type Migrator struct {
	db      *sql.DB
	dialect sqlbuilder.Dialect
	logger  Logger
}

func NewMigrator(db *sql.DB, dialect sqlbuilder.Dialect, logger Logger) *Migrator {
	return &Migrator{db: db, dialect: dialect, logger: logger}
}

// Load читает миграции диалекта, отсортированные по версии.
// Версия берется из числового префикса имени ("001_init.sql" -> 1).
func Load(dialect sqlbuilder.Dialect) ([]Migration, error) {
	dir := "postgres"
	if dialect == sqlbuilder.DialectSQLite {
		dir = "sqlite"
	}

	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir %s: %w", dir, err)
	}

	var out []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}

		body, err := fs.ReadFile(files, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })

	return out, nil
}

// Up применяет все еще не примененные миграции, каждую в своей транзакции.
// Возвращает количество примененных.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if _, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMP NOT NULL
)`); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	all, err := Load(m.dialect)
	if err != nil {
		return 0, err
	}

	builder := m.dialect.Builder()
	count := 0

	for _, mig := range all {
		if applied[mig.Version] {
			continue
		}

		tx, err := m.db.BeginTx(ctx, nil)
		if err != nil {
			return count, fmt.Errorf("begin migration %s: %w", mig.Name, err)
		}

		if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
			_ = tx.Rollback()
			return count, fmt.Errorf("apply migration %s: %w", mig.Name, err)
		}

		query, args, err := builder.Insert("schema_migrations").
			Columns("version", "name", "applied_at").
			Values(mig.Version, mig.Name, time.Now().UTC()).
			ToSql()
		if err != nil {
			_ = tx.Rollback()
			return count, fmt.Errorf("build migration record: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return count, fmt.Errorf("record migration %s: %w", mig.Name, err)
		}

		if err := tx.Commit(); err != nil {
			return count, fmt.Errorf("commit migration %s: %w", mig.Name, err)
		}

		if m.logger != nil {
			m.logger.Info("Migration applied: %s", mig.Name)
		}
		count++
	}

	return count, nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		applied[v] = true
	}

	return applied, rows.Err()
}
