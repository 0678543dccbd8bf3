// Package main реализует точку входа службы заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"smartnotes/internal/notes/adapters/grpc"
	httpAdapter "smartnotes/internal/notes/adapters/http"
	"smartnotes/internal/notes/app"
	"smartnotes/internal/notes/config"
	"smartnotes/pkg/logger"
	"smartnotes/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitStore            = "failed to initialize note store"
	ErrStartGRPC            = "failed to start gRPC server"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "note service started"
	LogServiceShutdownDone = "note service shutdown complete"
	LogInitStore           = "initializing note store"
	LogInitAnalyzer        = "initializing analyzer"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogStartingGRPC        = "starting gRPC health server"
	LogGRPCDisabled        = "gRPC health server disabled"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStore, zap.String("driver", cfg.Store.Driver))
		st, err := openStore(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrInitStore, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitAnalyzer, zap.String("command", cfg.Analyzer.Command))
		noteAnalyzer, closeCache := newAnalyzer(ctx, cfg)

		log.Info(ctx, LogInitUseCases)
		noteUseCase := app.NewNoteUseCase(st.repo, noteAnalyzer)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := httpAdapter.NewApp(cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout, cfg.HTTP.BodyLimit)
		httpAdapter.SetupRouter(fiberApp, httpAdapter.RouterConfig{CORSOrigins: cfg.HTTP.CORSOrigins}, noteUseCase, st.health)

		hooks := []shutdown.Hook{
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
		}

		if cfg.GRPC.Enabled {
			log.Info(ctx, LogStartingGRPC, zap.String("address", cfg.GRPC.GetAddress()))
			grpcServer := grpc.New(&cfg.GRPC, st.health)
			if err := grpcServer.Start(ctx); err != nil {
				log.Error(ctx, ErrStartGRPC, zap.Error(err))
				exitCode = 1
				if closeErr := st.close(ctx); closeErr != nil {
					log.Error(ctx, ErrInitStore, zap.Error(closeErr))
				}
				return
			}
			hooks = append(hooks, func(ctx context.Context) error {
				grpcServer.Stop(ctx)
				return nil
			})
		} else {
			log.Info(ctx, LogGRPCDisabled)
		}

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		hooks = append(hooks, st.close)
		if closeCache != nil {
			hooks = append(hooks, closeCache)
		}

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), hooks...)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
