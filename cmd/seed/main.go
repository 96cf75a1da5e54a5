// Command seed resets the database and loads a small sample data set:
// a week's worth of ingredients, three recipes, meal types, two shops and a
// couple of custom shopping items.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"meal-planner/internal/catalog"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/mealplan"
	"meal-planner/internal/shopping"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := reset(ctx, db); err != nil {
		log.Fatalf("Failed to reset database: %v", err)
	}
	if err := seed(ctx, db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("Seed complete.")
}

func reset(ctx context.Context, db *database.DB) error {
	tables := []string{
		"meal_plans",
		"recipe_ingredients",
		"recipes",
		"ingredients",
		"meal_types",
		"custom_shopping_items",
		"shopping_item_states",
		"shop_item_orders",
		"shops",
	}
	for _, table := range tables {
		if _, err := db.SQL.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func seed(ctx context.Context, db *database.DB) error {
	catalogRepo := catalog.NewRepository(db.SQL)
	mealPlanRepo := mealplan.NewRepository(db.SQL)
	shoppingRepo := shopping.NewRepository(db.SQL)

	ingredientDefs := []struct{ name, category string }{
		{"Chicken Breast", "Meat"},
		{"Olive Oil", "Pantry"},
		{"Garlic", "Produce"},
		{"Tomato", "Produce"},
		{"Pasta", "Pantry"},
		{"Spinach", "Produce"},
		{"Eggs", "Dairy"},
		{"Milk", "Dairy"},
		{"Oats", "Pantry"},
		{"Banana", "Produce"},
	}
	ingredients := make([]*catalog.Ingredient, 0, len(ingredientDefs))
	for _, def := range ingredientDefs {
		ing, err := catalogRepo.CreateIngredient(ctx, def.name, def.category)
		if err != nil {
			return err
		}
		ingredients = append(ingredients, ing)
	}

	mealTypeNames := []string{
		"Breakfast", "Morning snack", "Lunch", "Afternoon snack", "Dinner", "Evening snack",
	}
	mealTypes := make(map[string]*catalog.MealType, len(mealTypeNames))
	for _, name := range mealTypeNames {
		mt, err := catalogRepo.CreateMealType(ctx, name)
		if err != nil {
			return err
		}
		mealTypes[name] = mt
	}

	line := func(idx int, amount, unit string, sortOrder int) catalog.RecipeIngredient {
		return catalog.RecipeIngredient{
			IngredientID: ingredients[idx].ID,
			Amount:       decimal.RequireFromString(amount),
			Unit:         unit,
			SortOrder:    sortOrder,
		}
	}

	pasta, err := catalogRepo.CreateRecipe(ctx, catalog.Recipe{
		Name:         "Garlic Chicken Pasta",
		Description:  "Quick skillet chicken pasta with garlic and tomatoes.",
		PeopleAmount: 2,
		Steps: []string{
			"Season chicken and sear in olive oil.",
			"Add garlic and tomatoes, cook until soft.",
			"Toss with cooked pasta and spinach.",
		},
		Ingredients: []catalog.RecipeIngredient{
			line(0, "300", "g", 1),
			line(1, "2", "tbsp", 2),
			line(2, "3", "cloves", 3),
			line(3, "2", "pcs", 4),
			line(4, "200", "g", 5),
			line(5, "2", "cups", 6),
		},
	})
	if err != nil {
		return err
	}

	oatmeal, err := catalogRepo.CreateRecipe(ctx, catalog.Recipe{
		Name:         "Banana Oatmeal",
		Description:  "Creamy oats with banana and milk.",
		PeopleAmount: 1,
		Steps: []string{
			"Combine oats and milk in a saucepan.",
			"Cook until thick, then top with banana slices.",
		},
		Ingredients: []catalog.RecipeIngredient{
			line(8, "0.5", "cup", 1),
			line(7, "1", "cup", 2),
			line(9, "1", "pc", 3),
		},
	})
	if err != nil {
		return err
	}

	omelet, err := catalogRepo.CreateRecipe(ctx, catalog.Recipe{
		Name:         "Spinach Omelet",
		Description:  "Fluffy eggs with spinach.",
		PeopleAmount: 1,
		Steps:        []string{"Whisk eggs.", "Cook in skillet with spinach."},
		Ingredients: []catalog.RecipeIngredient{
			line(6, "2", "pcs", 1),
			line(5, "1", "cup", 2),
		},
	})
	if err != nil {
		return err
	}

	for _, name := range []string{"Fresh Mart", "Neighborhood Market"} {
		if _, err := catalogRepo.CreateShop(ctx, name); err != nil {
			return err
		}
	}

	today := mealplan.DateOf(time.Now())
	tomorrow := mealplan.DateOf(time.Now().AddDate(0, 0, 1))
	plans := []mealplan.MealPlan{
		{Date: today, MealTypeID: mealTypes["Dinner"].ID, RecipeID: pasta.ID, PeopleCount: 2},
		{Date: today, MealTypeID: mealTypes["Breakfast"].ID, RecipeID: oatmeal.ID, PeopleCount: 1},
		{Date: tomorrow, MealTypeID: mealTypes["Lunch"].ID, RecipeID: omelet.ID, PeopleCount: 1},
	}
	for _, plan := range plans {
		if _, err := mealPlanRepo.Create(ctx, plan); err != nil {
			return err
		}
	}

	pantry := "Pantry"
	household := "Household"
	bag := "bag"
	coffeeQty := decimal.RequireFromString("1")
	customItems := []shopping.CustomItem{
		{Name: "Coffee", Category: &pantry, Quantity: &coffeeQty, Unit: &bag},
		{Name: "Paper Towels", Category: &household},
	}
	for _, item := range customItems {
		if _, err := shoppingRepo.CreateCustomItem(ctx, item); err != nil {
			return err
		}
	}

	return nil
}
