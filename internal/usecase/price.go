package usecase

import (
	"regexp"
	"strconv"
)

// priceRegex matches the first decimal number in a raw price string.
var priceRegex = regexp.MustCompile(`\d+(\.\d+)?`)

// ParsePrice extracts a numeric USD value from a loosely formatted price
// string ("$3.99", "3.99/lb", "2 for $5.00"). The first numeric substring
// wins; no numeric substring means no price, never an error.
func ParsePrice(raw string) *float64 {
	match := priceRegex.FindString(raw)
	if match == "" {
		return nil
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &value
}
