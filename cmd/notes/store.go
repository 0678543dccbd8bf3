package main

import (
	"context"
	"fmt"

	mongoAdapter "smartnotes/internal/notes/adapters/mongo"
	"smartnotes/internal/notes/adapters/postgres"
	"smartnotes/internal/notes/config"
	"smartnotes/internal/notes/db"
	"smartnotes/internal/notes/ports/repositories"
	mongodb "smartnotes/pkg/db/mongo"
	"smartnotes/pkg/logger"
)

// store объединяет репозиторий, проверку здоровья и закрытие выбранного хранилища.
type store struct {
	repo   repositories.NoteRepository
	health repositories.HealthChecker
	close  func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		return openMongo(ctx, &cfg.Mongo)
	case config.DriverPostgres:
		return openPostgres(ctx, &cfg.Postgres)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrUnknownDriver, cfg.Store.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.PostgresConfig) (*store, error) {
	database, err := db.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	factory := postgres.NewRepositoryFactory(database.Pool())
	return &store{
		repo:   factory.NoteRepository(),
		health: database,
		close: func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, "closing postgres connections")
			database.Close(ctx)
			return nil
		},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.MongoConfig) (*store, error) {
	database, err := mongodb.New(ctx, cfg.URI, cfg.Database, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}

	coll := database.DB().Collection(cfg.Collection)
	if err := mongoAdapter.EnsureIndexes(ctx, coll); err != nil {
		if closeErr := database.Close(ctx); closeErr != nil {
			return nil, fmt.Errorf("%w (close: %w)", err, closeErr)
		}
		return nil, err
	}

	return &store{
		repo:   mongoAdapter.NewNoteRepository(coll),
		health: database,
		close: func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, "closing mongo connection")
			return database.Close(ctx)
		},
	}, nil
}
