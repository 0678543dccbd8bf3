// Package db предоставляет функционал для работы с базой данных сервиса заметок.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"smartnotes/internal/notes/config"
	"smartnotes/migrations"
	"smartnotes/pkg/db/postgres"
	"smartnotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing notes database"
	LogDBInitialized     = "notes database initialized successfully"
	LogMigrationStarting = "starting database migrations for notes service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply notes database migrations"
	ErrDBConnection      = "failed to connect to notes database"
	ErrDBCheckConnection = "error checking the database connection"
)

// DB представляет соединение с базой данных заметок.
type DB struct {
	database *postgres.Database
}

// New применяет встроенные миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	if err := migrate(ctx, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// migrate применяет миграции с диска, если задан путь, иначе встроенные.
func migrate(ctx context.Context, cfg *config.PostgresConfig) error {
	log := logger.Log(ctx)

	if source := cfg.GetMigrationsURL(); source != "" {
		log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", source))
		return postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), source)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_dir", migrations.NotesDir))
	return postgres.MigrateFS(ctx, cfg.GetConnectionURL(), migrations.Notes, migrations.NotesDir)
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}
