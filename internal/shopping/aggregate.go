package shopping

import (
	"github.com/shopspring/decimal"

	"meal-planner/internal/catalog"
	"meal-planner/internal/mealplan"
)

// Aggregate computes per-ingredient quantity totals for all meal plans dated
// on or before until. Each plan contributes lineAmount * peopleCount /
// recipe.PeopleAmount per ingredient line, in decimal arithmetic with no
// intermediate rounding. Plans whose recipe is missing from recipesByID are
// skipped, treated as already deleted. When the same ingredient appears with
// different units the last seen unit wins; no conversion is attempted.
func Aggregate(until mealplan.Date, plans []mealplan.MealPlan, recipesByID map[int64]*catalog.Recipe) map[int64]*AggregatedLine {
	totals := make(map[int64]*AggregatedLine)

	for _, plan := range plans {
		if plan.Date.After(until) {
			continue
		}
		recipe := recipesByID[plan.RecipeID]
		if recipe == nil {
			continue
		}

		scale := decimal.NewFromInt(int64(plan.PeopleCount)).
			Div(decimal.NewFromInt(int64(recipe.PeopleAmount)))

		for _, line := range recipe.Ingredients {
			entry := totals[line.IngredientID]
			if entry == nil {
				entry = &AggregatedLine{
					IngredientID: line.IngredientID,
					Name:         line.IngredientName,
					Category:     line.IngredientCategory,
					Quantity:     decimal.Zero,
				}
				totals[line.IngredientID] = entry
			}
			entry.Quantity = entry.Quantity.Add(line.Amount.Mul(scale))
			entry.Unit = line.Unit
		}
	}

	return totals
}
