package shopping

import (
	"sort"

	"github.com/shopspring/decimal"
)

// roundPlaces is the fixed-point precision of emitted quantities.
const roundPlaces = 2

// roundAmount rounds half-up to two fractional digits. A nil quantity stays
// nil rather than rounding to zero.
func roundAmount(value *decimal.Decimal) *decimal.Decimal {
	if value == nil {
		return nil
	}
	rounded := value.Round(roundPlaces)
	return &rounded
}

// Reconcile merges aggregated ingredient totals with custom items and the
// persisted checked states into one item set. Quantities are rounded here,
// at the point of emission. Ingredient items read their checked flag from
// checkedStates (absent means unchecked); custom items carry their own.
// Emission order is ingredient entries by id, then custom items as given;
// the final presentation order is decided by SortItems.
func Reconcile(aggregated map[int64]*AggregatedLine, customItems []CustomItem, checkedStates map[string]bool) []ListItem {
	items := make([]ListItem, 0, len(aggregated)+len(customItems))

	ingredientIDs := make([]int64, 0, len(aggregated))
	for id := range aggregated {
		ingredientIDs = append(ingredientIDs, id)
	}
	sort.Slice(ingredientIDs, func(i, j int) bool { return ingredientIDs[i] < ingredientIDs[j] })

	for _, id := range ingredientIDs {
		entry := aggregated[id]
		key := IngredientKey(id)
		category := entry.Category
		unit := entry.Unit
		items = append(items, ListItem{
			Key:      key,
			Name:     entry.Name,
			Category: &category,
			Quantity: roundAmount(&entry.Quantity),
			Unit:     &unit,
			Checked:  checkedStates[key.String()],
			Source:   SourceIngredient,
		})
	}

	for _, custom := range customItems {
		items = append(items, ListItem{
			Key:      CustomKey(custom.ID),
			Name:     custom.Name,
			Category: custom.Category,
			Quantity: roundAmount(custom.Quantity),
			Unit:     custom.Unit,
			Checked:  custom.Checked,
			Source:   SourceCustom,
		})
	}

	return items
}
