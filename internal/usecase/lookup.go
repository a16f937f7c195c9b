package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"calorielens/internal/domain"
)

// Package-level compiled regex patterns for cache key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// LookupServiceConfig holds configuration for the lookup service
type LookupServiceConfig struct {
	CacheTTL time.Duration
}

// LookupService resolves calories-per-serving for a product name by
// trying nutrition sources in fixed priority order. Source failures of
// any kind degrade to a "no result" outcome; they never propagate.
type LookupService struct {
	sources  []domain.NutritionSource
	cache    domain.LookupCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewLookupService creates a lookup service. Sources are tried in slice
// order, so the caller fixes the priority (OpenFoodFacts before USDA).
func NewLookupService(
	sources []domain.NutritionSource,
	cache domain.LookupCache,
	config LookupServiceConfig,
	logger *zap.Logger,
) *LookupService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &LookupService{
		sources:  sources,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Lookup returns the best-effort calorie value for a product name.
// Flow: check memo cache -> try each source in order -> memoize.
// Misses are memoized too, so a duplicate name never re-queries.
func (s *LookupService) Lookup(ctx context.Context, name string) domain.LookupResult {
	key := memoKey(name)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		s.logger.Debug("lookup memoized", zap.String("name", name), zap.String("source", string(cached.Source)))
		return cached
	}

	result := domain.LookupResult{Source: domain.SourceNone}
	for _, source := range s.sources {
		kcal, err := source.CaloriesPerServing(ctx, name)
		if err == nil {
			result = domain.LookupResult{Source: source.Name(), Calories: kcal}
			break
		}

		if errors.Is(err, domain.ErrNoNutritionData) {
			s.logger.Debug("source had no data",
				zap.String("source", string(source.Name())),
				zap.String("name", name))
		} else {
			s.logger.Warn("source lookup failed",
				zap.String("source", string(source.Name())),
				zap.String("name", name),
				zap.Error(err))
		}
	}

	if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
		s.logger.Warn("memoizing lookup failed", zap.String("name", name), zap.Error(err))
	}

	return result
}

// memoKey normalizes a product name for use as a cache key: lowercase,
// special characters stripped, whitespace collapsed.
func memoKey(name string) string {
	key := strings.ToLower(name)
	key = nonAlphanumericRegex.ReplaceAllString(key, "")
	key = multipleSpacesRegex.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}
