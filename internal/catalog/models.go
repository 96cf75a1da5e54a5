package catalog

import "github.com/shopspring/decimal"

// Ingredient is a purchasable ingredient with an aisle category used for
// shopping-list grouping.
type Ingredient struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// RecipeIngredient is one ingredient line of a recipe. The name and category
// of the referenced ingredient are resolved when the recipe is loaded.
type RecipeIngredient struct {
	IngredientID       int64           `json:"ingredient_id"`
	Amount             decimal.Decimal `json:"amount"`
	Unit               string          `json:"unit"`
	SortOrder          int             `json:"sort_order"`
	IngredientName     string          `json:"ingredient_name,omitempty"`
	IngredientCategory string          `json:"ingredient_category,omitempty"`
}

// Recipe is a dish with its ordered ingredient lines. PeopleAmount is the
// base serving count the ingredient amounts are written for.
type Recipe struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	PeopleAmount int                `json:"peopleAmount"`
	Steps        []string           `json:"steps"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
}

// MealType classifies a meal plan slot (breakfast, lunch, ...).
type MealType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Shop is a store the user shops at; each shop carries its own learned
// item ordering.
type Shop struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
