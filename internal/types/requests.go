package types

// CredentialsRequest is the body of the register and login endpoints. Fields
// are checked by the auth service so the error text stays stable.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddIngredientRequest adds one ingredient to the caller's pantry
type AddIngredientRequest struct {
	Name string `json:"name"`
}

// FindRecipesRequest carries the optional filters for a recipe search.
type FindRecipesRequest struct {
	DietTypes          []DietType `json:"diet_types" binding:"omitempty,dive,diettype"`
	MaxPrepTime        *int       `json:"max_prep_time" binding:"omitempty,gte=0"`
	MaxCarbonFootprint *float64   `json:"max_carbon_footprint" binding:"omitempty,gte=0"`
}

// MealPlanRequest asks for a generated weekly plan.
type MealPlanRequest struct {
	DietPreferences []string `json:"diet_preferences"`
}

// TipRequest asks for one sustainability tip.
type TipRequest struct {
	DietType DietType `json:"diet_type" binding:"required,diettype"`
}

// ExportResponse points at an uploaded meal plan
type ExportResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
