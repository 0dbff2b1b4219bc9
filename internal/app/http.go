package app

import (
	"context"

	"github.com/Abraxas-365/craftable/logx"
	"github.com/gin-gonic/gin"

	"multiauth-service/internal/auth"
	"multiauth-service/internal/auth/credentials"
	"multiauth-service/internal/auth/handler"
	"multiauth-service/internal/auth/provider"
	"multiauth-service/internal/auth/provider/google"
	"multiauth-service/internal/auth/token"
	"multiauth-service/internal/config"
	"multiauth-service/internal/lock"
	"multiauth-service/internal/middleware"
	"multiauth-service/internal/username"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func(ctx context.Context) error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	issuer, err := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, nil, err
	}

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(googleProvider)
	logx.Info("oauth providers registered: %v", registry.Names())

	authService := auth.NewService(
		infra.Users,
		credentials.NewHasher(),
		issuer,
		googleProvider,
		lock.NewRedisLocker(infra.Redis.Client),
	)

	authHandler := handler.NewHandler(authService, registry)
	usernameHandler := username.NewHandler(username.NewService(infra.Users))
	authMiddleware := middleware.NewAuthMiddleware(issuer)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/me", func(c *gin.Context) {
		userID, _ := middleware.UserIDFromContext(c.Request.Context())
		c.JSON(200, gin.H{
			"user_id": userID,
		})
	})

	usernameHandler.RegisterRoutes(api)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func(ctx context.Context) error {
		return infra.Mongo.Close(ctx)
	}, nil
}
