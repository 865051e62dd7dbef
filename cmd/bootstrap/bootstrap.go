package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutritrack-backend/config"
	deliveryHttp "nutritrack-backend/internal/delivery/http"
	"nutritrack-backend/internal/delivery/http/handler"
	"nutritrack-backend/internal/delivery/http/middleware"
	"nutritrack-backend/internal/infrastructure/cache"
	"nutritrack-backend/internal/infrastructure/database"
	"nutritrack-backend/internal/repository"
	"nutritrack-backend/internal/service"
	"nutritrack-backend/internal/usecase"
	"nutritrack-backend/pkg/jwt"
	"nutritrack-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("Database migrated successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize photo storage
	photoStorage, err := service.NewS3PhotoStorage(context.Background(), cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	// Initialize all layers
	app.Server = initializeServer(cfg, db, redisClient, photoStorage)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, photoStorage service.PhotoStorage) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	invitationRepo := repository.NewInvitationRepository()
	relationshipRepo := repository.NewRelationshipRepository()
	planRepo := repository.NewNutritionPlanRepository()
	scheduleRepo := repository.NewMealScheduleRepository()
	validationRepo := repository.NewMealValidationRepository()
	chatRepo := repository.NewChatMessageRepository()
	achievementRepo := repository.NewAchievementRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	mealAnalyzer := service.NewOpenAIMealAnalyzer(cfg.AI, log)
	progressCache := service.NewRedisProgressCache(redisClient, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, profileRepo, jwtService, redisClient, auditService)
	profileUsecase := usecase.NewProfileUsecase(db, log, userRepo, profileRepo, relationshipRepo, photoStorage, auditService)
	invitationUsecase := usecase.NewInvitationUsecase(db, log, cfg.Invitation, invitationRepo, profileRepo, relationshipRepo, auditService)
	planUsecase := usecase.NewNutritionPlanUsecase(db, log, planRepo, scheduleRepo, relationshipRepo, auditService)
	mealUsecase := usecase.NewMealValidationUsecase(db, log, validationRepo, scheduleRepo, relationshipRepo, mealAnalyzer, photoStorage, progressCache, auditService)
	progressUsecase := usecase.NewProgressUsecase(db, log, planRepo, validationRepo, relationshipRepo, progressCache)
	rewardUsecase := usecase.NewRewardUsecase(db, log, validationRepo, achievementRepo)
	chatUsecase := usecase.NewChatUsecase(db, log, chatRepo, relationshipRepo, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	profileHandler := handler.NewProfileHandler(profileUsecase, customValidator)
	invitationHandler := handler.NewInvitationHandler(invitationUsecase, customValidator)
	planHandler := handler.NewPlanHandler(planUsecase, customValidator)
	mealHandler := handler.NewMealHandler(mealUsecase, customValidator)
	progressHandler := handler.NewProgressHandler(progressUsecase)
	rewardHandler := handler.NewRewardHandler(rewardUsecase)
	chatHandler := handler.NewChatHandler(chatUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		profileHandler,
		invitationHandler,
		planHandler,
		mealHandler,
		progressHandler,
		rewardHandler,
		chatHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
