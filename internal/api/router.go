package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mugstore/backoffice/docs"
	"github.com/mugstore/backoffice/internal/api/handler"
	"github.com/mugstore/backoffice/internal/api/middleware"
	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

// Handlers groups the constructed HTTP handlers wired by main.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Tags       *handler.TagHandler
	Dashboard  *handler.DashboardHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(h Handlers, jwtSecret string, revoker ports.TokenRevoker, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("backoffice"))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Auth ---
	e.POST("/accounts/login", h.Auth.Login)

	authed := e.Group("", middleware.Auth(jwtSecret, revoker))
	authed.POST("/accounts/logout", h.Auth.Logout)
	authed.GET("/accounts/profile", h.Users.Profile)
	authed.PUT("/accounts/profile", h.Users.UpdateProfile)

	// --- User management (admin capability) ---
	admin := authed.Group("", middleware.RequireCapability(domain.CapAdmin))
	admin.GET("/accounts/users", h.Users.List)
	admin.POST("/accounts/users", h.Users.Create)
	admin.GET("/accounts/users/:id", h.Users.Get)
	admin.PUT("/accounts/users/:id", h.Users.Update)
	admin.DELETE("/accounts/users/:id", h.Users.Delete)
	admin.GET("/accounts/logs", h.Users.Logs)

	// --- Catalog reads and dashboard (manager capability) ---
	manager := authed.Group("", middleware.RequireCapability(domain.CapManager))
	manager.GET("/", h.Dashboard.Snapshot)
	manager.GET("/products/categories", h.Categories.List)
	manager.GET("/products/tags", h.Tags.List)
	manager.GET("/products", h.Products.List)
	manager.GET("/products/export", h.Products.Export)
	manager.GET("/products/:id", h.Products.Get)

	// --- Catalog mutations (admin capability; manager and staff are read-only) ---
	admin.POST("/products/categories", h.Categories.Create)
	admin.PUT("/products/categories/:id", h.Categories.Update)
	admin.DELETE("/products/categories/:id", h.Categories.Delete)

	admin.POST("/products/tags", h.Tags.Create)
	admin.PUT("/products/tags/:id", h.Tags.Update)
	admin.DELETE("/products/tags/:id", h.Tags.Delete)

	admin.POST("/products", h.Products.Create)
	admin.POST("/products/bulk-upload", h.Products.BulkUpload)
	admin.PUT("/products/:id", h.Products.Update)
	admin.DELETE("/products/:id", h.Products.Delete)

	admin.POST("/products/:id/variants", h.Products.AddVariant)
	admin.PUT("/products/variants/:id", h.Products.UpdateVariant)
	admin.DELETE("/products/variants/:id", h.Products.DeleteVariant)

	admin.POST("/products/:id/images", h.Products.AddGalleryImage)
	admin.DELETE("/products/images/:id", h.Products.DeleteGalleryImage)

	return e
}
