package usecase

import "strings"

// nonFoodKeywords marks household, cleaning, and personal-care items that
// should never hit the nutrition APIs. Matched case-insensitively as
// substrings; the heuristic accepts false positives and negatives.
var nonFoodKeywords = []string{
	"cat litter",
	"eye drops",
	"dryer sheets",
	"detergent",
	"bandages",
	"batteries",
	"trash bags",
	"foil",
	"wrap",
	"paper towel",
	"toilet paper",
	"tissue",
	"stamp",
	"air freshener",
	"wipe",
	"sunscreen",
	"hand sanitizer",
	"dish soap",
	"laundry",
}

// FoodClassifier decides whether a product name denotes a food item
// eligible for calorie lookup.
type FoodClassifier struct {
	keywords []string
}

// NewFoodClassifier creates a classifier with the default exclusion list.
func NewFoodClassifier() *FoodClassifier {
	return &FoodClassifier{keywords: nonFoodKeywords}
}

// IsFood reports whether the name contains no exclusion keyword. The
// check is case-insensitive.
func (c *FoodClassifier) IsFood(name string) bool {
	lowered := strings.ToLower(name)
	for _, kw := range c.keywords {
		if strings.Contains(lowered, kw) {
			return false
		}
	}
	return true
}
