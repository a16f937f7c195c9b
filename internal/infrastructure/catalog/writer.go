package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"calorielens/internal/domain"
)

var csvHeader = []string{"Store", "Name", "Location", "Price_USD", "Calories_per_serving"}

// noCaloriesCell marks rows where no calorie value could be resolved.
const noCaloriesCell = "N/A"

// WriteCSV serializes enriched rows in input order, header first.
func WriteCSV(w io.Writer, rows []domain.EnrichedRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			string(row.Store),
			row.Name,
			row.Location,
			formatFloat(row.PriceUSD, ""),
			formatFloat(row.Calories, noCaloriesCell),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row for %q: %w", row.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the CSV to path, creating or truncating it.
func WriteFile(path string, rows []domain.EnrichedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output %s: %w", path, err)
	}

	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("writing output %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output %s: %w", path, err)
	}
	return nil
}

// formatFloat renders a nullable value with minimal digits ("89", not
// "89.0"), falling back to the given sentinel when nil.
func formatFloat(v *float64, missing string) string {
	if v == nil {
		return missing
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
