package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"calorielens/internal/domain"
)

// CalorieLookup resolves a calorie value for one product name.
type CalorieLookup interface {
	Lookup(ctx context.Context, name string) domain.LookupResult
}

// Pipeline turns product records into enriched rows, one row per record.
// Records are processed strictly sequentially; after each calorie lookup
// it pauses for a fixed delay to stay polite to the upstream APIs.
// Non-food records skip both the lookup and the pause.
type Pipeline struct {
	classifier *FoodClassifier
	lookup     CalorieLookup
	delay      time.Duration
	logger     *zap.Logger
}

// NewPipeline creates an enrichment pipeline
func NewPipeline(classifier *FoodClassifier, lookup CalorieLookup, delay time.Duration, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		lookup:     lookup,
		delay:      delay,
		logger:     logger,
	}
}

// Run enriches every record in input order. Per-record lookup failures
// degrade that record's calorie value to "no result" without affecting
// the rest; the only error returned is context cancellation.
func (p *Pipeline) Run(ctx context.Context, records []domain.ProductRecord) ([]domain.EnrichedRow, error) {
	rows := make([]domain.EnrichedRow, 0, len(records))

	for _, rec := range records {
		row := domain.EnrichedRow{
			Store:    rec.Store,
			Name:     rec.Name,
			Location: rec.Location,
			PriceUSD: ParsePrice(rec.RawPrice),
		}

		looked := false
		if p.classifier.IsFood(rec.Name) {
			result := p.lookup.Lookup(ctx, rec.Name)
			if result.Source != domain.SourceNone {
				kcal := result.Calories
				row.Calories = &kcal
			}
			looked = true
			p.logger.Debug("record enriched",
				zap.String("store", string(rec.Store)),
				zap.String("name", rec.Name),
				zap.String("source", string(result.Source)))
		} else {
			p.logger.Debug("record classified non-food",
				zap.String("store", string(rec.Store)),
				zap.String("name", rec.Name))
		}

		rows = append(rows, row)

		// Pause only after records that actually invoked a lookup.
		if looked {
			if err := sleep(ctx, p.delay); err != nil {
				return rows, err
			}
		}
	}

	return rows, nil
}

// sleep pauses for d, returning early if the context ends.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
