package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"meal-planner/internal/apperr"
	"meal-planner/internal/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db.SQL
}

func amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestIngredients(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	t.Run("CreateAndList", func(t *testing.T) {
		if _, err := repo.CreateIngredient(ctx, "Milk", "Dairy"); err != nil {
			t.Fatalf("Expected create to succeed, got %v", err)
		}
		if _, err := repo.CreateIngredient(ctx, "Apples", "Produce"); err != nil {
			t.Fatalf("Expected create to succeed, got %v", err)
		}

		ingredients, err := repo.ListIngredients(ctx)
		if err != nil {
			t.Fatalf("Expected list to succeed, got %v", err)
		}
		if len(ingredients) != 2 || ingredients[0].Name != "Apples" {
			t.Errorf("Expected ingredients sorted by name, got %+v", ingredients)
		}
	})

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := repo.CreateIngredient(ctx, "Milk", "Beverages")
		if !apperr.IsConflict(err) {
			t.Errorf("Expected Conflict for duplicate name, got %v", err)
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		_, err := repo.UpdateIngredient(ctx, 999, "Ghost", "Nowhere")
		if !apperr.IsNotFound(err) {
			t.Errorf("Expected NotFound, got %v", err)
		}
	})

	t.Run("GetAbsentIsNil", func(t *testing.T) {
		ing, err := repo.GetIngredient(ctx, 999)
		if err != nil || ing != nil {
			t.Errorf("Expected (nil, nil) for absent ingredient, got (%v, %v)", ing, err)
		}
	})
}

func TestRecipes(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	flour, err := repo.CreateIngredient(ctx, "Flour", "Pantry")
	if err != nil {
		t.Fatalf("Expected create to succeed, got %v", err)
	}
	eggs, err := repo.CreateIngredient(ctx, "Eggs", "Dairy")
	if err != nil {
		t.Fatalf("Expected create to succeed, got %v", err)
	}

	t.Run("CreateResolvesLines", func(t *testing.T) {
		created, err := repo.CreateRecipe(ctx, Recipe{
			Name:         "Pancakes",
			Description:  "Weekend breakfast",
			PeopleAmount: 2,
			Steps:        []string{"Mix", "Fry"},
			Ingredients: []RecipeIngredient{
				{IngredientID: flour.ID, Amount: amount(t, "200"), Unit: "g", SortOrder: 1},
				{IngredientID: eggs.ID, Amount: amount(t, "2"), Unit: "pcs", SortOrder: 2},
			},
		})
		if err != nil {
			t.Fatalf("Expected create to succeed, got %v", err)
		}
		if len(created.Ingredients) != 2 {
			t.Fatalf("Expected 2 lines, got %d", len(created.Ingredients))
		}
		first := created.Ingredients[0]
		if first.IngredientName != "Flour" || first.IngredientCategory != "Pantry" {
			t.Errorf("Expected resolved ingredient metadata, got %+v", first)
		}
		if !first.Amount.Equal(amount(t, "200")) {
			t.Errorf("Expected amount 200, got %s", first.Amount)
		}
		if len(created.Steps) != 2 || created.Steps[0] != "Mix" {
			t.Errorf("Expected steps round-tripped, got %v", created.Steps)
		}
	})

	t.Run("NonPositiveServings", func(t *testing.T) {
		_, err := repo.CreateRecipe(ctx, Recipe{Name: "Broken", PeopleAmount: 0})
		if !apperr.IsInvalidArgument(err) {
			t.Errorf("Expected InvalidArgument, got %v", err)
		}
	})

	t.Run("TooManyLines", func(t *testing.T) {
		lines := make([]RecipeIngredient, maxRecipeIngredients+1)
		for i := range lines {
			lines[i] = RecipeIngredient{IngredientID: int64(i + 1), Amount: amount(t, "1")}
		}
		_, err := repo.CreateRecipe(ctx, Recipe{Name: "Overfull", PeopleAmount: 1, Ingredients: lines})
		if !apperr.IsInvalidArgument(err) {
			t.Errorf("Expected InvalidArgument, got %v", err)
		}
	})

	t.Run("DuplicateLine", func(t *testing.T) {
		_, err := repo.CreateRecipe(ctx, Recipe{
			Name: "Doubled", PeopleAmount: 1,
			Ingredients: []RecipeIngredient{
				{IngredientID: flour.ID, Amount: amount(t, "1")},
				{IngredientID: flour.ID, Amount: amount(t, "2")},
			},
		})
		if !apperr.IsInvalidArgument(err) {
			t.Errorf("Expected InvalidArgument, got %v", err)
		}
	})

	t.Run("UnknownIngredient", func(t *testing.T) {
		_, err := repo.CreateRecipe(ctx, Recipe{
			Name: "Phantom", PeopleAmount: 1,
			Ingredients: []RecipeIngredient{{IngredientID: 999, Amount: amount(t, "1")}},
		})
		if !apperr.IsInvalidArgument(err) {
			t.Errorf("Expected InvalidArgument, got %v", err)
		}
	})

	t.Run("UpdateReplacesLines", func(t *testing.T) {
		created, err := repo.CreateRecipe(ctx, Recipe{
			Name: "Omelet", PeopleAmount: 1,
			Ingredients: []RecipeIngredient{
				{IngredientID: eggs.ID, Amount: amount(t, "3"), Unit: "pcs", SortOrder: 1},
			},
		})
		if err != nil {
			t.Fatalf("Expected create to succeed, got %v", err)
		}

		updated, err := repo.UpdateRecipe(ctx, created.ID, Recipe{
			Name: "Omelet Deluxe", PeopleAmount: 2,
			Ingredients: []RecipeIngredient{
				{IngredientID: flour.ID, Amount: amount(t, "50"), Unit: "g", SortOrder: 1},
			},
		})
		if err != nil {
			t.Fatalf("Expected update to succeed, got %v", err)
		}
		if updated.Name != "Omelet Deluxe" || updated.PeopleAmount != 2 {
			t.Errorf("Unexpected updated recipe: %+v", updated)
		}
		if len(updated.Ingredients) != 1 || updated.Ingredients[0].IngredientName != "Flour" {
			t.Errorf("Expected lines fully replaced, got %+v", updated.Ingredients)
		}
	})

	t.Run("DeleteCascadesLines", func(t *testing.T) {
		created, err := repo.CreateRecipe(ctx, Recipe{
			Name: "Short-lived", PeopleAmount: 1,
			Ingredients: []RecipeIngredient{
				{IngredientID: eggs.ID, Amount: amount(t, "1"), Unit: "pcs", SortOrder: 1},
			},
		})
		if err != nil {
			t.Fatalf("Expected create to succeed, got %v", err)
		}
		if err := repo.DeleteRecipe(ctx, created.ID); err != nil {
			t.Fatalf("Expected delete to succeed, got %v", err)
		}
		got, err := repo.GetRecipe(ctx, created.ID)
		if err != nil || got != nil {
			t.Errorf("Expected recipe gone, got (%v, %v)", got, err)
		}
	})
}

func TestMealTypesAndShops(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	t.Run("MealTypeLifecycle", func(t *testing.T) {
		mt, err := repo.CreateMealType(ctx, "Dinner")
		if err != nil {
			t.Fatalf("Expected create to succeed, got %v", err)
		}
		if _, err := repo.CreateMealType(ctx, "Dinner"); !apperr.IsConflict(err) {
			t.Errorf("Expected Conflict for duplicate name, got %v", err)
		}
		renamed, err := repo.UpdateMealType(ctx, mt.ID, "Supper")
		if err != nil || renamed.Name != "Supper" {
			t.Fatalf("Expected rename to succeed, got (%v, %v)", renamed, err)
		}
		if err := repo.DeleteMealType(ctx, mt.ID); err != nil {
			t.Fatalf("Expected delete to succeed, got %v", err)
		}
		if err := repo.DeleteMealType(ctx, mt.ID); !apperr.IsNotFound(err) {
			t.Errorf("Expected NotFound on double delete, got %v", err)
		}
	})

	t.Run("ShopLifecycle", func(t *testing.T) {
		shop, err := repo.CreateShop(ctx, "Corner Store")
		if err != nil {
			t.Fatalf("Expected create to succeed, got %v", err)
		}
		got, err := repo.GetShop(ctx, shop.ID)
		if err != nil || got == nil || got.Name != "Corner Store" {
			t.Fatalf("Expected shop back, got (%v, %v)", got, err)
		}
		if _, err := repo.CreateShop(ctx, "Corner Store"); !apperr.IsConflict(err) {
			t.Errorf("Expected Conflict for duplicate name, got %v", err)
		}
		if err := repo.DeleteShop(ctx, shop.ID); err != nil {
			t.Fatalf("Expected delete to succeed, got %v", err)
		}
		got, err = repo.GetShop(ctx, shop.ID)
		if err != nil || got != nil {
			t.Errorf("Expected (nil, nil) after delete, got (%v, %v)", got, err)
		}
	})
}
