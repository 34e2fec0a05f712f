package main

import (
	"context"
	"log"
	"os"

	"storefront/cmd"
	"storefront/internal/core/container"
	"storefront/internal/core/logger"
	"storefront/internal/core/routes"
	"storefront/internal/database"
	"storefront/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer db.Close()

	log.Println("Connected to the database successfully!")

	appContainer := container.NewAppContainer(db, zapLogger)

	if appContainer.Bus != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		appContainer.Bus.StartInvalidator(ctx)
	}

	router := gin.New()
	router.Use(gin.Logger(), middleware.RecoveryMiddleware(zapLogger))

	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	routes.RegisterUtilityRoutes(router, uploadsDir)

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		panic(err)
	}
}
