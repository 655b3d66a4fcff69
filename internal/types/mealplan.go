package types

// Meal is one slot of a day in a generated meal plan. Field names follow the
// JSON the text model is asked to produce.
type Meal struct {
	Name            string   `json:"name"`
	CarbonFootprint float64  `json:"carbonFootprint"`
	Ingredients     []string `json:"ingredients"`
	RecipeID        string   `json:"recipeId"`
}

// MealPlanDay holds the three meals of one day.
type MealPlanDay struct {
	Day       string `json:"day"`
	Breakfast Meal   `json:"breakfast"`
	Lunch     Meal   `json:"lunch"`
	Dinner    Meal   `json:"dinner"`
}

// ShoppingList groups the items needed for a meal plan.
type ShoppingList struct {
	Produce []string `json:"produce"`
	Pantry  []string `json:"pantry"`
	Dairy   []string `json:"dairy"`
	Other   []string `json:"other"`
}

// MealPlan is a full week of meals plus the matching shopping list.
type MealPlan struct {
	Days         []MealPlanDay `json:"mealPlan"`
	ShoppingList *ShoppingList `json:"shoppingList"`
}

// TotalCarbonFootprint sums the footprint of every meal in the plan.
func (p MealPlan) TotalCarbonFootprint() float64 {
	var total float64
	for _, d := range p.Days {
		total += d.Breakfast.CarbonFootprint + d.Lunch.CarbonFootprint + d.Dinner.CarbonFootprint
	}
	return total
}
