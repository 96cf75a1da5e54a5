package main

import (
	"log"

	"meal-planner/internal/catalog"
	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/logger"
	"meal-planner/internal/mealplan"
	"meal-planner/internal/server"
	"meal-planner/internal/shopping"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		zlog.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	catalogRepo := catalog.NewRepository(db.SQL)
	mealPlanRepo := mealplan.NewRepository(db.SQL)
	shoppingRepo := shopping.NewRepository(db.SQL)

	shoppingService := shopping.NewService(catalogRepo, mealPlanRepo, shoppingRepo, shoppingRepo, shoppingRepo)
	recipeClipper := clipper.New()

	router := server.NewRouter(server.RouterConfig{
		IngredientHandler: server.NewIngredientHandler(catalogRepo),
		RecipeHandler:     server.NewRecipeHandler(catalogRepo, recipeClipper),
		MealTypeHandler:   server.NewMealTypeHandler(catalogRepo),
		MealPlanHandler:   server.NewMealPlanHandler(mealPlanRepo),
		ShopHandler:       server.NewShopHandler(catalogRepo),
		ShoppingHandler:   server.NewShoppingHandler(shoppingService),
		CORSOrigins:       cfg.CORSOrigins,
		Log:               zlog,
	})

	zlog.Info("starting server", "addr", cfg.Addr, "db", cfg.DBPath)
	if err := router.Run(cfg.Addr); err != nil {
		zlog.Fatal("server stopped", "error", err)
	}
}
