package types

import (
	"fmt"
	"strings"
)

// DietType is the closed vocabulary used both as a recipe tag and a search filter.
type DietType string

const (
	DietVegetarian    DietType = "vegetarian"
	DietVegan         DietType = "vegan"
	DietPescatarian   DietType = "pescatarian"
	DietKeto          DietType = "keto"
	DietPaleo         DietType = "paleo"
	DietGlutenFree    DietType = "gluten-free"
	DietDairyFree     DietType = "dairy-free"
	DietLowCarb       DietType = "low-carb"
	DietHighProtein   DietType = "high-protein"
	DietFatFree       DietType = "fat-free"
	DietMediterranean DietType = "mediterranean"
	DietWhole30       DietType = "whole30"
	DietRaw           DietType = "raw"
	DietOther         DietType = "other"
)

// DietTypes lists every supported diet type in display order.
var DietTypes = []DietType{
	DietVegetarian, DietVegan, DietPescatarian, DietKeto, DietPaleo,
	DietGlutenFree, DietDairyFree, DietLowCarb, DietHighProtein, DietFatFree,
	DietMediterranean, DietWhole30, DietRaw, DietOther,
}

// searchVocabulary holds the entries where the recipe API's own name differs.
var searchVocabulary = map[DietType]string{
	DietKeto: "ketogenic",
}

// Valid reports whether d is one of the known diet types.
func (d DietType) Valid() bool {
	for _, known := range DietTypes {
		if d == known {
			return true
		}
	}
	return false
}

// SearchValue returns the name the recipe search API uses for d.
func (d DietType) SearchValue() string {
	if v, ok := searchVocabulary[d]; ok {
		return v
	}
	return string(d)
}

// ParseDietType normalizes s and checks it against the vocabulary.
func ParseDietType(s string) (DietType, error) {
	d := DietType(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown diet type %q", s)
	}
	return d, nil
}
