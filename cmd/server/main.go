package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewbox/docs"
	"reviewbox/internal/ai"
	"reviewbox/internal/auth"
	"reviewbox/internal/blob"
	"reviewbox/internal/cache"
	"reviewbox/internal/config"
	"reviewbox/internal/db"
	"reviewbox/internal/handler"
	"reviewbox/internal/mail"
	"reviewbox/internal/model"
	"reviewbox/internal/repository"
	"reviewbox/internal/router"
	"reviewbox/internal/service"
)

// @title Reviewbox API
// @version 1.0
// @description Review page SaaS: products, plan-gated creation, anonymous reviews with AI-transcribed audio.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize external adapters
	openAIClient := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.TranscriptionModel, cfg.CompletionModel)
	mailer := mail.NewResendMailer(cfg.ResendAPIKey)
	uploader, err := blob.NewS3Uploader(blob.Options{
		Endpoint:  cfg.BlobEndpoint,
		AccessKey: cfg.BlobAccessKey,
		SecretKey: cfg.BlobSecretKey,
		Bucket:    cfg.BlobBucket,
		UseSSL:    cfg.BlobUseSSL,
		PublicURL: cfg.BlobPublicURL,
	})
	if err != nil {
		log.Fatalf("blob init: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	productService := service.NewProductService(productRepo, reviewRepo, cacheClient, mailer, cfg.EmailFrom, cfg.AppBaseURL)
	reviewService := service.NewReviewService(reviewRepo, productRepo, cacheClient)
	audioService := service.NewAudioService(reviewRepo, productRepo, cacheClient, openAIClient, openAIClient, cfg.ReviewLanguage)
	uploadService := service.NewUploadService(uploader)
	planService := service.NewPlanService()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	reviewHandler := handler.NewReviewHandler(reviewService, audioService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	planHandler := handler.NewPlanHandler(planService)

	// Register routes
	router.Register(
		e,
		cfg,
		userRepo,
		authHandler,
		productHandler,
		reviewHandler,
		uploadHandler,
		planHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
