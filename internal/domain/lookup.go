package domain

import (
	"context"
	"time"
)

// Source identifies which nutrition database resolved a lookup.
type Source string

const (
	SourceOpenFoodFacts Source = "OpenFoodFacts"
	SourceUSDA          Source = "USDA"
	SourceNone          Source = "None"
)

// LookupResult is the outcome of one calorie lookup. Transient: it is
// scoped to a single record's enrichment (plus the in-run memo cache).
// Source == SourceNone means no database had a usable value and Calories
// is meaningless.
type LookupResult struct {
	Source   Source  `json:"source"`
	Calories float64 `json:"calories"`
}

// NutritionSource is one nutrition database the lookup service can try.
// Implementations map their own API response shape into a plain
// calories-per-serving value.
type NutritionSource interface {
	Name() Source
	// CaloriesPerServing returns a best-effort kcal value for a free-text
	// product query. Returns ErrNoNutritionData when the source has no
	// usable match and ErrSourceUnavailable on transport/decoding failure.
	CaloriesPerServing(ctx context.Context, query string) (float64, error)
}

// LookupCache memoizes lookup results within a single run. Nothing is
// persisted across runs.
type LookupCache interface {
	Get(ctx context.Context, key string) (LookupResult, error)
	Set(ctx context.Context, key string, result LookupResult, ttl time.Duration) error
}
