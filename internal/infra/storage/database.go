// Package storage открывает соединение с базой и применяет схему.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/pkg/sqlbuilder"
)

// Open открывает пул соединений по конфигурации и проверяет его
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, sqlbuilder.Dialect, error) {
	dialect, err := sqlbuilder.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(dialect.DriverName(), cfg.DSN())
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}

	if dialect == sqlbuilder.DialectSQLite {
		// sqlite допускает одного писателя; один коннект исключает SQLITE_BUSY внутри процесса
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping database: %w", err)
	}

	return db, dialect, nil
}
