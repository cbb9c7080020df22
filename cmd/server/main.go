package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/looplinehq/loopline/backend/internal/router"
	"github.com/looplinehq/loopline/backend/internal/services"
	"github.com/looplinehq/loopline/backend/pkg/assets"
	"github.com/looplinehq/loopline/backend/pkg/config"
	"github.com/looplinehq/loopline/backend/pkg/firebase"
	"github.com/looplinehq/loopline/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase for push delivery. Optional: without credentials
	// the server runs fine, notifications just stay in-app.
	ctx := context.Background()
	var push services.PushSender
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Printf("Firebase not configured, push delivery disabled: %v", err)
	} else {
		push = firebaseApp
	}

	// Initialize the S3-backed asset store
	s3Client, err := assets.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize S3 client: %v", err)
	}
	assetStore := assets.NewStore(s3Client, cfg.AssetBucket)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, assetStore, push)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
