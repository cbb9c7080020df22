package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/looplinehq/loopline/backend/internal/handlers"
	"github.com/looplinehq/loopline/backend/internal/middleware"
	"github.com/looplinehq/loopline/backend/internal/models"
	"github.com/looplinehq/loopline/backend/internal/repositories"
	"github.com/looplinehq/loopline/backend/internal/services"
	"github.com/looplinehq/loopline/backend/pkg/assets"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RateLimiter(eMiddleware.NewRateLimiterMemoryStore(20)))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// push may be nil when Firebase is not configured.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, assetStore *assets.Store, push services.PushSender) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Notification{},
		&models.Comment{},
		&models.Like{},
		&models.CommentLike{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	messageRepo := repositories.NewPostgresMessageRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database("loopline"))
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)

	// --- Core services ---
	// Every feature notifies through the notification service; the message
	// service receives it as a plain Notifier capability.
	notificationService := services.NewNotificationService(notificationRepo, userRepo, push)

	var assetCollaborator services.AssetStore
	if assetStore != nil {
		assetCollaborator = assetStore
	}
	messageService := services.NewMessageService(messageRepo, userRepo, notificationService, assetCollaborator)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Messaging routes
	messageHandler := handlers.NewMessageHandler(messageService)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Messaging routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationService, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, notificationService)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, commentLikeRepo, commentRepo, postRepo, notificationService)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationService)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Upload routes
	if assetStore != nil {
		uploadHandler := handlers.NewUploadHandler(assetStore)
		uploadHandler.RegisterUploadRoutes(api)
		log.Println("Upload routes configured.")
	}

	log.Println("All routes configured.")
}
