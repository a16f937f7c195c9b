package domain

import "errors"

var (
	// ErrNoNutritionData is returned when a nutrition source responded but
	// had no usable calorie value for the query
	ErrNoNutritionData = errors.New("no usable nutrition data for query")

	// ErrSourceUnavailable is returned when a nutrition source could not be
	// queried (transport failure, non-200 status, malformed response)
	ErrSourceUnavailable = errors.New("nutrition source unavailable")

	// ErrInvalidQuery is returned when a lookup is attempted with an empty query
	ErrInvalidQuery = errors.New("invalid lookup query")

	// ErrCacheMiss is returned when a lookup result is not memoized
	ErrCacheMiss = errors.New("cache miss")
)
