package service

import (
	"fmt"

	"github.com/pageza/greenmeal/backend/internal/types"
)

// Thresholds are the inclusive upper bounds a recipe must meet to be shown.
type Thresholds struct {
	MaxPrepTime        int
	MaxCarbonFootprint float64
}

// DefaultThresholds are used when the caller supplies no limits.
func DefaultThresholds() Thresholds {
	return Thresholds{MaxPrepTime: 120, MaxCarbonFootprint: 20}
}

// FilterRecipes keeps recipes with prep time and footprint at or below the
// thresholds. Order is preserved and the input is not modified.
func FilterRecipes(recipes []types.Recipe, th Thresholds) []types.Recipe {
	byTime := make([]types.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.PrepTime <= th.MaxPrepTime {
			byTime = append(byTime, r)
		}
	}

	filtered := make([]types.Recipe, 0, len(byTime))
	for _, r := range byTime {
		if r.TotalCarbonFootprint <= th.MaxCarbonFootprint {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterNotification describes the outcome of a filtered search.
func FilterNotification(filtered []types.Recipe) types.Notification {
	if len(filtered) == 0 {
		return types.Notification{
			Title:       "No Matching Recipes Found",
			Description: "Try adjusting your filters or adding more ingredients.",
		}
	}
	return types.Notification{
		Title:       "Recipes Found!",
		Description: fmt.Sprintf("Found %d recipes that match your criteria.", len(filtered)),
	}
}
