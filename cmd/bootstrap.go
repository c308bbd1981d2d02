package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/sqlbuilder"
)

// environment общие для всех команд конфигурация, логгер и соединение с базой
type environment struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *sql.DB
	dialect sqlbuilder.Dialect
}

func setup(ctx context.Context, configPath string) (*environment, error) {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded from %s", configPath)

	// Подключаемся к базе данных
	db, dialect, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Successfully connected to database (driver=%s)", dialect)

	return &environment{cfg: cfg, log: log, db: db, dialect: dialect}, nil
}

func (e *environment) migrate(ctx context.Context) error {
	applied, err := migrations.NewMigrator(e.db, e.dialect, e.log).Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	e.log.Info("Migrations applied: %d", applied)
	return nil
}

func (e *environment) close() {
	if err := e.db.Close(); err != nil {
		e.log.Error("Failed to close database: %v", err)
	}
	_ = e.log.Close()
}
