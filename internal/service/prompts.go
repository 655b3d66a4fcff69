package service

import (
	"fmt"
	"strings"
)

func carbonPrompt(recipeName string, ingredients []string) string {
	return fmt.Sprintf(`Calculate the approximate carbon footprint for the following recipe:

Recipe: %s
Ingredients: %s

Please provide a single number representing the total carbon footprint in kg CO2e.
Consider the following factors:
1. Production and transportation of ingredients
2. Processing and packaging
3. Cooking method and energy usage
4. Food waste potential

Return only the number, no explanation or units.`, recipeName, strings.Join(ingredients, ", "))
}

func mealPlanPrompt(dietPreferences, ingredients []string) string {
	prefs := strings.Join(dietPreferences, ", ")
	if prefs == "" {
		prefs = "No specific preferences"
	}
	return fmt.Sprintf(`You are a sustainable meal planning assistant. Create a weekly meal plan following these requirements:

Diet preferences: %s
Available ingredients: %s

Please provide a JSON response in the following format:
{
  "mealPlan": [
    {
      "day": "Monday",
      "breakfast": {
        "name": "Meal name",
        "carbonFootprint": number,
        "ingredients": ["ingredient1", "ingredient2"],
        "recipeId": "unique-id"
      },
      "lunch": {
        "name": "Meal name",
        "carbonFootprint": number,
        "ingredients": ["ingredient1", "ingredient2"],
        "recipeId": "unique-id"
      },
      "dinner": {
        "name": "Meal name",
        "carbonFootprint": number,
        "ingredients": ["ingredient1", "ingredient2"],
        "recipeId": "unique-id"
      }
    }
  ],
  "shoppingList": {
    "produce": ["item1", "item2"],
    "pantry": ["item1", "item2"],
    "dairy": ["item1", "item2"],
    "other": ["item1", "item2"]
  }
}

Ensure the response is valid JSON and includes all 7 days of the week.`, prefs, strings.Join(ingredients, ", "))
}

func tipPrompt(dietType string, ingredients []string) string {
	return fmt.Sprintf(`Given the user's diet type (%s) and these ingredients: %s,
return ONE concise, actionable tip that helps reduce carbon footprint and food waste.
Focus on exactly ONE of these themes: seasonality, proper storage, energy-efficient cooking, or creative use of scraps.
Return ONLY the single tip as a clear, practical sentence. No explanations, no additional text.
Example format: "Store leftover vegetables in airtight containers in the freezer to extend their shelf life and reduce food waste."`,
		dietType, strings.Join(ingredients, ", "))
}
