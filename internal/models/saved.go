package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/greenmeal/backend/internal/types"
	"gorm.io/gorm"
)

// SavedRecipe is a recipe the user kept from a search.
type SavedRecipe struct {
	ID                   uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt            time.Time          `json:"created_at"`
	UserID               uuid.UUID          `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_user_recipe" json:"user_id"`
	RecipeID             string             `gorm:"size:64;not null;uniqueIndex:idx_saved_user_recipe" json:"recipe_id"`
	Name                 string             `gorm:"size:255;not null" json:"name"`
	ImageURL             string             `gorm:"size:512" json:"image_url"`
	PrepTime             int                `json:"prep_time"`
	TotalCarbonFootprint float64            `json:"total_carbon_footprint"`
	DietaryTags          StringArray        `json:"dietary_tags"`
	Ingredients          StringArray        `json:"ingredients"`
	Recipe               JSON[types.Recipe] `json:"recipe"`
	Embedding            Embedding          `json:"-"`
}

// BeforeCreate assigns an ID when the caller left it empty
func (r *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SavedMealPlan holds the latest generated plan and shopping list of a user.
type SavedMealPlan struct {
	ID           uuid.UUID                 `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
	UserID       uuid.UUID                 `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Days         JSON[[]types.MealPlanDay] `json:"meal_plan"`
	ShoppingList JSON[types.ShoppingList]  `json:"shopping_list"`
}

// BeforeCreate assigns an ID when the caller left it empty
func (p *SavedMealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MealPlan rebuilds the domain value.
func (p *SavedMealPlan) MealPlan() types.MealPlan {
	list := p.ShoppingList.Data
	return types.MealPlan{Days: p.Days.Data, ShoppingList: &list}
}

// All lists every table for migrations.
func All() []interface{} {
	return []interface{}{&User{}, &SavedRecipe{}, &SavedMealPlan{}}
}
