package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"meal-planner/internal/logger"
)

// RouterConfig carries the wired handlers and middleware settings.
type RouterConfig struct {
	IngredientHandler *IngredientHandler
	RecipeHandler     *RecipeHandler
	MealTypeHandler   *MealTypeHandler
	MealPlanHandler   *MealPlanHandler
	ShopHandler       *ShopHandler
	ShoppingHandler   *ShoppingHandler

	// CORSOrigins lists allowed origins; empty allows all.
	CORSOrigins []string
	Log         *logger.Logger
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Log != nil {
		router.Use(requestLogger(cfg.Log))
	}

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AllowHeaders = []string{"*"}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", cfg.IngredientHandler.List)
		ingredients.POST("", cfg.IngredientHandler.Create)
		ingredients.PUT("/:id", cfg.IngredientHandler.Update)
		ingredients.DELETE("/:id", cfg.IngredientHandler.Delete)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", cfg.RecipeHandler.List)
		recipes.POST("", cfg.RecipeHandler.Create)
		recipes.POST("/clip", cfg.RecipeHandler.Clip)
		recipes.GET("/:id", cfg.RecipeHandler.Get)
		recipes.PUT("/:id", cfg.RecipeHandler.Update)
		recipes.DELETE("/:id", cfg.RecipeHandler.Delete)
	}

	mealTypes := router.Group("/meal-types")
	{
		mealTypes.GET("", cfg.MealTypeHandler.List)
		mealTypes.POST("", cfg.MealTypeHandler.Create)
		mealTypes.PUT("/:id", cfg.MealTypeHandler.Update)
		mealTypes.DELETE("/:id", cfg.MealTypeHandler.Delete)
	}

	mealPlans := router.Group("/meal-plans")
	{
		mealPlans.GET("", cfg.MealPlanHandler.List)
		mealPlans.POST("", cfg.MealPlanHandler.Create)
		mealPlans.PUT("/:id", cfg.MealPlanHandler.Update)
		mealPlans.DELETE("/:id", cfg.MealPlanHandler.Delete)
	}

	shops := router.Group("/shops")
	{
		shops.GET("", cfg.ShopHandler.List)
		shops.POST("", cfg.ShopHandler.Create)
		shops.DELETE("/:id", cfg.ShopHandler.Delete)
	}

	shoppingList := router.Group("/shopping-list")
	{
		shoppingList.GET("", cfg.ShoppingHandler.GetList)
		shoppingList.POST("/custom-item", cfg.ShoppingHandler.AddCustomItem)
		shoppingList.DELETE("/custom-item/:id", cfg.ShoppingHandler.DeleteCustomItem)
		shoppingList.POST("/toggle", cfg.ShoppingHandler.Toggle)
		shoppingList.POST("/learn-order", cfg.ShoppingHandler.LearnOrder)
	}

	return router
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
