package shopping

import (
	"testing"

	"meal-planner/internal/apperr"
)

func TestParseItemKey(t *testing.T) {
	t.Run("Ingredient", func(t *testing.T) {
		key, err := ParseItemKey("ingredient:7")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if key.Kind != KindIngredient || key.ID != 7 {
			t.Errorf("Expected ingredient:7, got %+v", key)
		}
	})

	t.Run("Custom", func(t *testing.T) {
		key, err := ParseItemKey("custom:42")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if key.Kind != KindCustom || key.ID != 42 {
			t.Errorf("Expected custom:42, got %+v", key)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		if got := IngredientKey(3).String(); got != "ingredient:3" {
			t.Errorf("Expected 'ingredient:3', got '%s'", got)
		}
		if got := CustomKey(9).String(); got != "custom:9" {
			t.Errorf("Expected 'custom:9', got '%s'", got)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, raw := range []string{"weird:1", "ingredient", "ingredient:abc", "", ":5"} {
			_, err := ParseItemKey(raw)
			if !apperr.IsInvalidArgument(err) {
				t.Errorf("Expected InvalidArgument for %q, got %v", raw, err)
			}
		}
	})
}
