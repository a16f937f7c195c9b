package domain

import (
	"bytes"
	"strconv"
)

// OFFSearchResponse is the shape returned by the OpenFoodFacts
// legacy search endpoint (cgi/search.pl).
type OFFSearchResponse struct {
	Products []OFFProduct `json:"products"`
	Count    int          `json:"count"`
}

// OFFProduct is a single OpenFoodFacts search hit, trimmed to the
// nutriments we request via the fields parameter.
type OFFProduct struct {
	Nutriments OFFNutriments `json:"nutriments"`
}

// OFFNutriments carries the two energy fields we care about. Values may
// arrive as JSON numbers or quoted strings depending on the product.
type OFFNutriments struct {
	EnergyKcalServing KcalValue `json:"energy-kcal_serving"`
	EnergyKcal100g    KcalValue `json:"energy-kcal_100g"`
}

// KcalValue is a nutriment value that OpenFoodFacts serves either as a
// JSON number or as a quoted string. Absent, null, or unparsable values
// decode to zero, which downstream treats as "not usable".
type KcalValue float64

func (k *KcalValue) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*k = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*k = 0
		return nil
	}
	*k = KcalValue(v)
	return nil
}

// USDASearchResponse represents the response from the USDA FoodData
// Central search API.
type USDASearchResponse struct {
	Foods     []USDAFood `json:"foods"`
	TotalHits int        `json:"totalHits"`
}

// USDAFood represents a food item from the USDA FoodData Central API
type USDAFood struct {
	FdcID       int            `json:"fdcId"`
	Description string         `json:"description"`
	DataType    string         `json:"dataType"`
	Nutrients   []USDANutrient `json:"foodNutrients"`
}

// USDANutrient represents a single nutrient from USDA data
type USDANutrient struct {
	NutrientID   int     `json:"nutrientId"`
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}
