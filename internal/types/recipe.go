package types

// NoInstructions is used when the search API returns a recipe without steps.
const NoInstructions = "No instructions provided"

// Ingredient is a pantry entry or a line of a recipe's ingredient list.
type Ingredient struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name"`
	Quantity        *float64 `json:"quantity,omitempty"`
	Unit            string   `json:"unit,omitempty"`
	CarbonFootprint *float64 `json:"carbon_footprint,omitempty"`
	Preparation     string   `json:"preparation,omitempty"`
}

// NutritionFacts is the per-serving nutrition breakdown of a recipe.
type NutritionFacts struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber,omitempty"`
}

// Recipe represents a recipe returned by the search pipeline
type Recipe struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	ImageURL             string          `json:"image_url"`
	PrepTime             int             `json:"prep_time"`
	CookTime             int             `json:"cook_time"`
	Servings             int             `json:"servings"`
	Ingredients          []Ingredient    `json:"ingredients"`
	Instructions         []string        `json:"instructions"`
	DietaryTags          []string        `json:"dietary_tags"`
	TotalCarbonFootprint float64         `json:"total_carbon_footprint"`
	CarbonImpact         string          `json:"carbon_impact,omitempty"`
	NutritionFacts       *NutritionFacts `json:"nutrition_facts,omitempty"`
	Source               string          `json:"source,omitempty"`
}

// IngredientNames returns the names of the recipe's ingredients in order.
func (r Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Name
	}
	return names
}

// CarbonImpact buckets a footprint in kg CO2e for display.
func CarbonImpact(kg float64) string {
	switch {
	case kg <= 3:
		return "Low"
	case kg <= 7:
		return "Medium"
	default:
		return "High"
	}
}

// Notification is a user-visible message produced by a state change.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}
