package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"calorielens/internal/domain"
)

// fakeLookup records every name it is asked about.
type fakeLookup struct {
	results map[string]domain.LookupResult
	queried []string
}

func (f *fakeLookup) Lookup(ctx context.Context, name string) domain.LookupResult {
	f.queried = append(f.queried, name)
	if result, ok := f.results[name]; ok {
		return result
	}
	return domain.LookupResult{Source: domain.SourceNone}
}

func newTestPipeline(lookup *fakeLookup, delay time.Duration) *Pipeline {
	return NewPipeline(NewFoodClassifier(), lookup, delay, zap.NewNop())
}

func TestPipeline_OneRowPerRecord(t *testing.T) {
	records := []domain.ProductRecord{
		{Store: domain.StoreTarget, Name: "Banana", RawPrice: "$0.59", Location: "Produce"},
		{Store: domain.StoreTarget, Name: "Paper Towels", RawPrice: "$5.49", Location: "Aisle 7"},
		{Store: domain.StoreSafeway, Name: "Unknown Snack", RawPrice: "", Location: ""},
		{Store: domain.StoreCostco, Name: "Milk", RawPrice: "$3.99", Location: "Dairy"},
	}
	lookup := &fakeLookup{results: map[string]domain.LookupResult{
		"Banana": {Source: domain.SourceOpenFoodFacts, Calories: 89},
		"Milk":   {Source: domain.SourceUSDA, Calories: 150},
	}}

	rows, err := newTestPipeline(lookup, 0).Run(context.Background(), records)

	require.NoError(t, err)
	require.Len(t, rows, len(records))
	for i, row := range rows {
		assert.Equal(t, records[i].Store, row.Store)
		assert.Equal(t, records[i].Name, row.Name)
		assert.Equal(t, records[i].Location, row.Location)
	}
}

func TestPipeline_NonFoodSkipsLookup(t *testing.T) {
	records := []domain.ProductRecord{
		{Store: domain.StoreTarget, Name: "Paper Towels", RawPrice: "$5.49", Location: "Aisle 7"},
	}
	lookup := &fakeLookup{}

	rows, err := newTestPipeline(lookup, 0).Run(context.Background(), records)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, lookup.queried, "non-food records must not trigger a lookup")
	assert.Nil(t, rows[0].Calories)
	require.NotNil(t, rows[0].PriceUSD)
	assert.Equal(t, 5.49, *rows[0].PriceUSD)
}

func TestPipeline_FoodRowCarriesCalories(t *testing.T) {
	records := []domain.ProductRecord{
		{Store: domain.StoreTarget, Name: "Banana", RawPrice: "$0.59", Location: "Produce"},
	}
	lookup := &fakeLookup{results: map[string]domain.LookupResult{
		"Banana": {Source: domain.SourceOpenFoodFacts, Calories: 89},
	}}

	rows, err := newTestPipeline(lookup, 0).Run(context.Background(), records)

	require.NoError(t, err)
	require.NotNil(t, rows[0].Calories)
	assert.Equal(t, 89.0, *rows[0].Calories)
	require.NotNil(t, rows[0].PriceUSD)
	assert.Equal(t, 0.59, *rows[0].PriceUSD)
}

func TestPipeline_LookupMissDegradesToNil(t *testing.T) {
	records := []domain.ProductRecord{
		{Store: domain.StoreSafeway, Name: "Obscure Snack", RawPrice: "$1.99"},
	}
	lookup := &fakeLookup{}

	rows, err := newTestPipeline(lookup, 0).Run(context.Background(), records)

	require.NoError(t, err)
	assert.Equal(t, []string{"Obscure Snack"}, lookup.queried)
	assert.Nil(t, rows[0].Calories)
}

func TestPipeline_PriceParsedIndependentlyOfClassification(t *testing.T) {
	records := []domain.ProductRecord{
		{Store: domain.StoreTarget, Name: "Trash Bags", RawPrice: "N/A"},
		{Store: domain.StoreTarget, Name: "Banana", RawPrice: "N/A"},
	}
	lookup := &fakeLookup{}

	rows, err := newTestPipeline(lookup, 0).Run(context.Background(), records)

	require.NoError(t, err)
	assert.Nil(t, rows[0].PriceUSD)
	assert.Nil(t, rows[1].PriceUSD)
}

func TestPipeline_DelayAppliesPerLookup(t *testing.T) {
	const delay = 20 * time.Millisecond
	records := []domain.ProductRecord{
		{Store: domain.StoreTarget, Name: "Banana"},
		{Store: domain.StoreTarget, Name: "Paper Towels"}, // non-food: no delay
		{Store: domain.StoreTarget, Name: "Milk"},
		{Store: domain.StoreTarget, Name: "Bread"},
	}
	lookup := &fakeLookup{}

	start := time.Now()
	rows, err := newTestPipeline(lookup, delay).Run(context.Background(), records)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Len(t, lookup.queried, 3)
	assert.GreaterOrEqual(t, elapsed, 3*delay, "each lookup must be followed by the fixed delay")
}

func TestPipeline_ContextCancellation(t *testing.T) {
	records := []domain.ProductRecord{
		{Store: domain.StoreTarget, Name: "Banana"},
		{Store: domain.StoreTarget, Name: "Milk"},
	}
	lookup := &fakeLookup{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, err := newTestPipeline(lookup, time.Second).Run(ctx, records)

	assert.Error(t, err)
	assert.Len(t, rows, 1, "the in-flight record still yields its row")
}

func TestPipeline_EmptyInput(t *testing.T) {
	rows, err := newTestPipeline(&fakeLookup{}, 0).Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, rows)
}
