package shopping

import (
	"github.com/shopspring/decimal"

	"meal-planner/internal/mealplan"
)

// SourceIngredient and SourceCustom label where a list item came from.
const (
	SourceIngredient = "ingredient"
	SourceCustom     = "custom"
)

// ListItem is one row of the consolidated shopping list.
type ListItem struct {
	Key      ItemKey          `json:"item_key"`
	Name     string           `json:"name"`
	Category *string          `json:"category"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     *string          `json:"unit"`
	Checked  bool             `json:"checked"`
	Source   string           `json:"source"`
}

// List is the response of a shopping-list build: the effective cutoff date
// and the sorted items.
type List struct {
	UntilDate mealplan.Date `json:"untilDate"`
	Items     []ListItem    `json:"items"`
}

// AggregatedLine is the running total for one ingredient across all included
// meal plans. Quantity stays unrounded until the final list is emitted.
type AggregatedLine struct {
	IngredientID int64
	Name         string
	Category     string
	Quantity     decimal.Decimal
	Unit         string
}

// CustomItem is a manually added shopping item. Unlike ingredient-derived
// items its checked flag lives on the record itself.
type CustomItem struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Category *string          `json:"category"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     *string          `json:"unit"`
	Checked  bool             `json:"checked"`
}
