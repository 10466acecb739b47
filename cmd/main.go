package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Bruce-k901/My-App-sub018/internal/data/db"
	"github.com/Bruce-k901/My-App-sub018/internal/data/repos"
	"github.com/Bruce-k901/My-App-sub018/internal/handlers"
	"github.com/Bruce-k901/My-App-sub018/internal/middleware"
	"github.com/Bruce-k901/My-App-sub018/internal/observability"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
	"github.com/Bruce-k901/My-App-sub018/internal/server"
	"github.com/Bruce-k901/My-App-sub018/internal/services"
	"github.com/Bruce-k901/My-App-sub018/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	serviceName := utils.GetEnv("SERVICE_NAME", "recipe-core", log)
	port := utils.GetEnv("PORT", "8080", log)

	// Tracing
	shutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
	})
	if shutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	ingredientRepo := repos.NewIngredientRepo(thePG, log)
	recipeRepo := repos.NewRecipeRepo(thePG, log)
	recipeLineRepo := repos.NewRecipeLineRepo(thePG, log)
	procedureDocRepo := repos.NewProcedureDocumentRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	docCache := services.NewDocumentCacheService(log)
	codeSvc := services.NewRecipeCodeService(thePG, log, recipeRepo)
	prepLinkSvc := services.NewPrepLinkService(thePG, log, ingredientRepo, recipeRepo, codeSvc)
	procedureDocSvc := services.NewProcedureDocService(thePG, log, recipeRepo, recipeLineRepo, ingredientRepo, userRepo, procedureDocRepo, docCache)
	recipeLineSvc := services.NewRecipeLineService(thePG, log, recipeRepo, recipeLineRepo, procedureDocSvc)
	versionSvc := services.NewRecipeVersionService(thePG, log, recipeRepo, recipeLineRepo, procedureDocRepo, docCache)
	recipeSvc := services.NewRecipeService(thePG, log, recipeRepo, recipeLineRepo)

	// Handlers + middleware
	log.Info("Setting up handlers...")
	authMiddleware := middleware.NewAuthMiddleware(log, jwtSecretKey)
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:    authMiddleware,
		IngredientHandler: handlers.NewIngredientHandler(prepLinkSvc),
		RecipeHandler:     handlers.NewRecipeHandler(recipeSvc, versionSvc),
		RecipeLineHandler: handlers.NewRecipeLineHandler(recipeLineSvc),
		DocumentHandler:   handlers.NewDocumentHandler(procedureDocSvc),
		ServiceName:       serviceName,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
