package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"smartnotes/internal/notes/domain/entities"
	"smartnotes/internal/notes/ports/cache"
	"smartnotes/internal/notes/ports/services"
	"smartnotes/pkg/logger"
)

// KeyPrefix - префикс ключей кэша результатов анализа.
const KeyPrefix = "summary:"

// CachedAnalyzer кэширует результаты анализа по хэшу текста.
// Ошибки кэша только логируются.
type CachedAnalyzer struct {
	next  services.Analyzer
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedAnalyzer создает кэширующий декоратор.
func NewCachedAnalyzer(next services.Analyzer, c cache.Cache, ttl time.Duration) *CachedAnalyzer {
	return &CachedAnalyzer{next: next, cache: c, ttl: ttl}
}

var _ services.Analyzer = (*CachedAnalyzer)(nil)

// CacheKey возвращает ключ кэша для текста.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// Analyze возвращает результат из кэша или вызывает следующий анализатор.
func (c *CachedAnalyzer) Analyze(ctx context.Context, text string) (*entities.Summary, error) {
	key := CacheKey(text)
	log := logger.Log(ctx).With(zap.String("method", "CachedAnalyzer.Analyze"), zap.String("key", key))

	if cached, ok := c.lookup(ctx, log, key); ok {
		log.Debug(ctx, "analysis cache hit")
		return cached, nil
	}

	summary, err := c.next.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		log.Warn(ctx, "failed to encode analysis for cache", zap.Error(err))
		return summary, nil
	}
	if err := c.cache.Set(ctx, key, string(payload), c.ttl); err != nil {
		log.Warn(ctx, "failed to store analysis in cache", zap.Error(err))
	}

	return summary, nil
}

func (c *CachedAnalyzer) lookup(ctx context.Context, log *logger.Logger, key string) (*entities.Summary, bool) {
	value, found, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, "analysis cache lookup failed", zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var summary entities.Summary
	if err := json.Unmarshal([]byte(value), &summary); err != nil {
		log.Warn(ctx, "discarding malformed cache entry", zap.Error(err))
		return nil, false
	}
	summary.Keywords = entities.NormalizeKeywords(summary.Keywords)

	return &summary, true
}
