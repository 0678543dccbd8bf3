// Package mongo содержит общий код подключения к MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"smartnotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to MongoDB"
	LogConnected  = "successfully connected to MongoDB"
	LogClosing    = "disconnecting from MongoDB"
)

// Константы для сообщений об ошибках.
const (
	ErrConnect    = "failed to connect to mongodb"
	ErrPing       = "failed to ping mongodb"
	ErrDisconnect = "failed to disconnect from mongodb"
)

// Database представляет подключение к одной базе MongoDB.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// New подключается к MongoDB по uri и проверяет соединение.
func New(ctx context.Context, uri, database string, connectTimeout time.Duration) (*Database, error) {
	log := logger.Log(ctx).With(zap.String("database", database))
	log.Info(ctx, LogConnecting)

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error(ctx, ErrConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		if discErr := client.Disconnect(ctx); discErr != nil {
			log.Warn(ctx, ErrDisconnect, zap.Error(discErr))
		}
		log.Error(ctx, ErrPing, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPing, err)
	}

	log.Info(ctx, LogConnected)
	return &Database{client: client, db: client.Database(database)}, nil
}

// DB возвращает дескриптор базы данных.
func (d *Database) DB() *mongo.Database {
	return d.db
}

// Ping проверяет доступность сервера.
func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close разрывает соединение.
func (d *Database) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDisconnect, err)
	}
	return nil
}
