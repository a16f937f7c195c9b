package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"calorielens/internal/domain"
)

// productJSON is the loose per-record shape of a store dump. Extra
// fields are ignored.
type productJSON struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Location string `json:"location"`
}

// LoadStore reads one store's JSON dump into product records. A missing
// file or invalid JSON is an error naming the file; callers treat it as
// fatal for the run.
func LoadStore(store domain.Store, path string) ([]domain.ProductRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s catalog %s: %w", store, path, err)
	}

	var items []productJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing %s catalog %s: %w", store, path, err)
	}

	records := make([]domain.ProductRecord, 0, len(items))
	for _, item := range items {
		records = append(records, domain.ProductRecord{
			Store:    store,
			Name:     strings.TrimSpace(item.Name),
			RawPrice: item.Price,
			Location: item.Location,
		})
	}

	return records, nil
}

// LoadAll loads every store's catalog in the fixed store order, keeping
// file order within each store.
func LoadAll(paths map[domain.Store]string) ([]domain.ProductRecord, error) {
	var records []domain.ProductRecord
	for _, store := range domain.StoreOrder {
		path, ok := paths[store]
		if !ok {
			return nil, fmt.Errorf("no catalog path configured for store %s", store)
		}
		recs, err := LoadStore(store, path)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}
