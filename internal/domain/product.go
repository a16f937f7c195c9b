package domain

// Store identifies which retail catalog a product came from.
type Store string

const (
	StoreTarget  Store = "Target"
	StoreSafeway Store = "Safeway"
	StoreCostco  Store = "Costco"
)

// StoreOrder fixes the order in which store catalogs are processed and
// their rows appear in the output CSV.
var StoreOrder = []Store{StoreTarget, StoreSafeway, StoreCostco}

// ProductRecord is one catalog entry as loaded from a store's JSON dump.
// It is immutable after loading and consumed exactly once by the pipeline.
type ProductRecord struct {
	Store    Store
	Name     string
	RawPrice string // loosely formatted, e.g. "$3.99" or "2 for $5.00"
	Location string // aisle/section text as reported by the store
}

// EnrichedRow is one output CSV row: a ProductRecord plus the resolved
// price and calorie values. A nil PriceUSD renders as an empty cell and
// a nil Calories renders as the literal "N/A".
type EnrichedRow struct {
	Store    Store
	Name     string
	Location string
	PriceUSD *float64
	Calories *float64 // kcal per serving (or per 100g when that's all a source reports)
}
