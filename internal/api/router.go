package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studentdiscount/marketplace-api/internal/api/handler"
	"github.com/studentdiscount/marketplace-api/internal/api/middleware"
	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

// Deps carries everything the router needs. Mongo and Redis may be nil
// depending on the configured storage driver; the readiness probe adapts.
type Deps struct {
	AuthService    ports.AuthService
	UserService    ports.UserService
	ProductService ports.ProductService
	Mongo          *mongo.Database
	Redis          *redis.Client
	JWTSecret      string
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)
	productHandler := handler.NewProductHandler(deps.ProductService)
	authRequired := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/otp/request", authHandler.RequestOTP)
	e.POST("/api/admin/login", authHandler.AdminLogin)

	// --- User routes ---
	users := e.Group("/api/users", authRequired)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)

	// --- Product routes: reads are public, writes are vendor/admin ---
	e.GET("/api/products", productHandler.List)
	e.GET("/api/products/search", productHandler.Search)
	e.GET("/api/products/:id", productHandler.Get)

	catalog := e.Group("/api/products", authRequired, middleware.RBAC(domain.RoleVendor, domain.RoleAdmin))
	catalog.POST("", productHandler.Create)
	catalog.PUT("/:id", productHandler.Update)
	catalog.DELETE("/:id", productHandler.Delete)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
