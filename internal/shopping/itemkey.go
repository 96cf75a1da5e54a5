package shopping

import (
	"fmt"
	"strconv"
	"strings"

	"meal-planner/internal/apperr"
)

// KeyKind discriminates the two id spaces an item key can point into.
type KeyKind string

const (
	// KindIngredient keys items derived from recipe ingredients.
	KindIngredient KeyKind = "ingredient"
	// KindCustom keys manually added shopping items.
	KindCustom KeyKind = "custom"
)

// ItemKey identifies a shopping-list item across both id spaces. The string
// encoding ("ingredient:<id>" / "custom:<id>") is shared with the checked
// state and shop order tables; parsing is confined to the boundary so the
// merge and sort logic never sees raw strings.
type ItemKey struct {
	Kind KeyKind
	ID   int64
}

// IngredientKey builds the key for an ingredient-derived item.
func IngredientKey(id int64) ItemKey {
	return ItemKey{Kind: KindIngredient, ID: id}
}

// CustomKey builds the key for a manually added item.
func CustomKey(id int64) ItemKey {
	return ItemKey{Kind: KindCustom, ID: id}
}

func (k ItemKey) String() string {
	return fmt.Sprintf("%s:%d", k.Kind, k.ID)
}

// MarshalJSON encodes the key in its string form.
func (k ItemKey) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

// ParseItemKey decodes an item key string. Keys without a recognized prefix
// or a numeric id fail with InvalidArgument.
func ParseItemKey(s string) (ItemKey, error) {
	prefix, rawID, found := strings.Cut(s, ":")
	if !found {
		return ItemKey{}, apperr.InvalidArgument(fmt.Sprintf("invalid item_key %q", s))
	}
	kind := KeyKind(prefix)
	if kind != KindIngredient && kind != KindCustom {
		return ItemKey{}, apperr.InvalidArgument(fmt.Sprintf("invalid item_key %q", s))
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return ItemKey{}, apperr.InvalidArgument(fmt.Sprintf("invalid item_key %q", s))
	}
	return ItemKey{Kind: kind, ID: id}, nil
}
