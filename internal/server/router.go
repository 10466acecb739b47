package server

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Bruce-k901/My-App-sub018/internal/handlers"
	"github.com/Bruce-k901/My-App-sub018/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware    *middleware.AuthMiddleware
	IngredientHandler *handlers.IngredientHandler
	RecipeHandler     *handlers.RecipeHandler
	RecipeLineHandler *handlers.RecipeLineHandler
	DocumentHandler   *handlers.DocumentHandler
	ServiceName       string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("OTEL_ENABLED"))); v == "1" || v == "true" || v == "yes" || v == "on" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Ingredient catalog -> prep linkage
		api.POST("/ingredients/:id/prep-item", cfg.IngredientHandler.TogglePrepItem)
		api.POST("/prep-links/reconcile", cfg.IngredientHandler.ReconcilePrepLinks)

		// Recipe editor
		api.GET("/recipes/:id", cfg.RecipeHandler.Get)
		api.PUT("/recipes/:id", cfg.RecipeHandler.Save)
		api.PATCH("/recipes/:id/status", cfg.RecipeHandler.SetStatus)

		// Recipe-line editor
		api.POST("/recipes/:id/lines", cfg.RecipeLineHandler.SaveLine)

		// Print/export consumers
		api.GET("/documents/:id/print", cfg.DocumentHandler.GetPrint)
	}

	return router
}
