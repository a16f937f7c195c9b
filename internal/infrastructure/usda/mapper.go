package usda

import "calorielens/internal/domain"

// NutrientIDEnergy is the FoodData Central nutrient id for energy in kcal.
const NutrientIDEnergy = 1008

// EnergyKcal extracts the calorie value from a USDA nutrient list. A
// nutrient counts when it carries the energy nutrient id, or is named
// "Energy" with a KCAL unit (the search endpoint omits ids on some data
// types). Zero values are treated as not usable.
func EnergyKcal(nutrients []domain.USDANutrient) (float64, bool) {
	for _, nutrient := range nutrients {
		if !isEnergyKcal(nutrient) {
			continue
		}
		if nutrient.Value > 0 {
			return nutrient.Value, true
		}
	}
	return 0, false
}

func isEnergyKcal(n domain.USDANutrient) bool {
	if n.NutrientID == NutrientIDEnergy {
		return true
	}
	return n.NutrientName == "Energy" && n.UnitName == "KCAL"
}
