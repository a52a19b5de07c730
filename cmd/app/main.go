package main

import (
	"context"
	"crypto/rand"
	"log"

	"github.com/stackltd/API-for-onlinestore/internal/config"
	"github.com/stackltd/API-for-onlinestore/internal/db"
	"github.com/stackltd/API-for-onlinestore/internal/middleware"
	"github.com/stackltd/API-for-onlinestore/internal/repository"
	"github.com/stackltd/API-for-onlinestore/internal/services"
	"github.com/stackltd/API-for-onlinestore/internal/session"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	// ======================
	// SESSIONS
	// ======================
	sessionKey := []byte(cfg.SessionKey)
	if len(sessionKey) == 0 {
		// ephemeral key, anonymous baskets do not survive a restart
		sessionKey = make([]byte, 32)
		if _, err := rand.Read(sessionKey); err != nil {
			logger.Fatal("generate session key", zap.Error(err))
		}
		logger.Warn("SESSION_KEY not set, using an ephemeral key")
	}
	cookieStore := middleware.NewCookieStore(sessionKey)

	basketSessions := session.NewMemoryStore(cfg.AnonBasketTTL)
	defer basketSessions.Close()

	// ======================
	// REPOSITORIES
	// ======================
	productRepo := repository.NewProductRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	tagRepo := repository.NewTagRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	basketRepo := repository.NewBasketRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)

	// ======================
	// SERVICES
	// ======================
	catalogSvc := services.NewCatalogService(productRepo, categoryRepo, tagRepo, reviewRepo)
	basketSvc := services.NewBasketService(basketRepo, productRepo, basketSessions, logger)
	orderSvc := services.NewOrderService(orderRepo, productRepo, logger)
	paymentSvc := services.NewPaymentService(orderRepo, logger)
	authSvc := services.NewAuthService(userRepo)
	profileSvc := services.NewProfileService(profileRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/api")
	anon := middleware.AnonymousToken(cookieStore)

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerCatalogRoutes(api, catalogSvc)
	registerBasketRoutes(api, basketSvc, anon)
	registerOrderRoutes(api, orderSvc)
	registerPaymentRoutes(api, paymentSvc)
	registerAuthRoutes(api, authSvc, basketSvc, anon)
	registerProfileRoutes(api, profileSvc, authSvc)

	// ======================
	// SERVER
	// ======================
	logger.Info("starting server", zap.String("port", cfg.Port))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
