package main

import (
	"context"

	"go.uber.org/zap"

	"smartnotes/internal/notes/adapters/analyzer"
	"smartnotes/internal/notes/adapters/cache"
	"smartnotes/internal/notes/config"
	"smartnotes/internal/notes/ports/services"
	"smartnotes/internal/notes/resilience"
	"smartnotes/pkg/db/redis"
	"smartnotes/pkg/logger"
	"smartnotes/pkg/shutdown"
)

// newAnalyzer собирает цепочку: кэш (если включен), circuit breaker, процесс.
// Недоступный Redis не мешает запуску, анализ идет без кэша.
func newAnalyzer(ctx context.Context, cfg *config.Config) (services.Analyzer, shutdown.Hook) {
	log := logger.Log(ctx)

	process := analyzer.NewProcessAnalyzer(analyzer.ProcessConfig{
		Command:       cfg.Analyzer.Command,
		Args:          cfg.Analyzer.Args,
		WorkDir:       cfg.Analyzer.WorkDir,
		Timeout:       cfg.Analyzer.Timeout,
		MaxConcurrent: cfg.Analyzer.MaxConcurrent,
	})

	breaker := resilience.NewCircuitBreaker("analyzer", resilience.CircuitBreakerConfig{
		ErrorThreshold:   cfg.Analyzer.BreakerThreshold,
		Timeout:          cfg.Analyzer.BreakerTimeout,
		SuccessThreshold: 1,
	})
	var chain services.Analyzer = analyzer.NewBreakerAnalyzer(process, breaker)

	if !cfg.Redis.Enabled {
		return chain, nil
	}

	client, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
	if err != nil {
		log.Warn(ctx, "analysis cache disabled", zap.Error(err))
		return chain, nil
	}

	redisCache := cache.NewRedisCache(client, cfg.Redis.DefaultTTL)
	closeCache := func(ctx context.Context) error {
		logger.Log(ctx).Info(ctx, "closing Redis connection")
		return redisCache.Close()
	}

	return analyzer.NewCachedAnalyzer(chain, redisCache, cfg.Redis.DefaultTTL), closeCache
}
