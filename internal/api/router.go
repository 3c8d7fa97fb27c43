package api

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/finvault/bank-gateway/internal/api/handler"
	"github.com/finvault/bank-gateway/internal/api/middleware"
	"github.com/finvault/bank-gateway/internal/core/domain"
	"github.com/finvault/bank-gateway/internal/core/ports"
	"github.com/finvault/bank-gateway/internal/core/service"
	"github.com/finvault/bank-gateway/internal/infrastructure/config"
	mongostore "github.com/finvault/bank-gateway/internal/infrastructure/db/mongo"
	redisstore "github.com/finvault/bank-gateway/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gateway"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	limiter := redisstore.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, limiter, audit, service.AdminBypass{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Role:     cfg.Admin.Role,
	})

	secureCookie := cfg.Env == "production"
	authHandler := handler.NewAuthHandler(authService, secureCookie)
	adminHandler := handler.NewAdminHandler(authService)
	authMiddleware := middleware.Auth(tokenService)

	// --- Session routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/signup", authHandler.Signup)
	e.POST("/logout", authHandler.Logout)
	e.GET("/profile", authHandler.Profile, authMiddleware)

	// --- Admin user CRUD ---
	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.POST("/addUser", adminHandler.AddUser)
	admin.GET("/listUsers", adminHandler.ListUsers)
	admin.DELETE("/deleteUser/:id", adminHandler.DeleteUser)

	// --- Role-gated proxy to the user service ---
	upstream, err := url.Parse(cfg.UserServiceURL)
	if err != nil {
		return nil, fmt.Errorf("parse user service url: %w", err)
	}
	user := e.Group("/user", authMiddleware, middleware.RBAC(domain.RoleAdmin, domain.RoleEmployee))
	user.Use(echomiddleware.Proxy(echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{
		{URL: upstream},
	})))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
