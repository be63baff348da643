package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/medstock/backend/internal/domain/identity"
	"github.com/medstock/backend/internal/infrastructure/auth"
	"github.com/medstock/backend/internal/infrastructure/config"
	"github.com/medstock/backend/internal/infrastructure/logger"
	"github.com/medstock/backend/internal/interfaces/http/handler"
	"github.com/medstock/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler mounted by NewEngine
type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Notification  *handler.NotificationHandler
	ActivityLog   *handler.ActivityLogHandler
	Vendor        *handler.VendorHandler
	Item          *handler.ItemHandler
	VendorItem    *handler.VendorItemHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	ASN           *handler.ASNHandler
	Location      *handler.LocationHandler
	Inventory     *handler.InventoryHandler
	StockRule     *handler.StockRuleHandler
	MRN           *handler.MRNHandler
	Binning       *handler.BinningHandler
	Report        *handler.ReportHandler
	Cleanup       *handler.CleanupHandler
}

// EngineConfig holds what NewEngine needs besides the handlers
type EngineConfig struct {
	ServiceName    string
	HTTP           config.HTTPConfig
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	// RateLimiter is nil when rate limiting is disabled. The caller owns it and stops it on shutdown.
	RateLimiter    *middleware.RateLimiter
	TracingEnabled bool
	TracerProvider trace.TracerProvider
	Logger         *zap.Logger
}

// publicPaths are reachable without a bearer token
var publicPaths = []string{
	"/api/v1/health",
	"/api/v1/auth/register",
	"/api/v1/auth/login",
	"/api/v1/auth/refresh",
}

// NewEngine builds the gin engine with the global middleware stack and the
// /api/v1 route table.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order: request id, recovery, access log, tracing, security headers,
	// CORS, compression, body limit, rate limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		Enabled:        cfg.TracingEnabled,
		ServiceName:    cfg.ServiceName,
		TracerProvider: cfg.TracerProvider,
	})...)
	engine.Use(middleware.Secure())
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/health"})))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	if h.Health != nil {
		engine.GET("/health", h.Health.Check)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.TokenBlacklist,
		SkipPaths:      publicPaths,
		Logger:         log,
	}))

	registerRoutes(r, h)
	r.Setup()

	return engine
}

func registerRoutes(r *Router, h Handlers) {
	admin := middleware.RequireRole(string(identity.RoleAdmin))
	adminOrManager := middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleManager))
	adminOrUser := middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleUser))

	if h.Health != nil {
		system := NewDomainGroup("system", "/health")
		system.GET("", h.Health.Check)
		r.Register(system)
	}

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", h.Auth.Register)
	authRoutes.POST("/login", h.Auth.Login)
	authRoutes.POST("/refresh", h.Auth.RefreshToken)
	authRoutes.POST("/logout", h.Auth.Logout)
	authRoutes.GET("/me", h.Auth.GetCurrentUser)

	users := NewDomainGroup("users", "/users").Use(admin)
	users.POST("", h.User.Create)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.PATCH("/:id/status", h.User.SetStatus)
	users.DELETE("/:id", h.User.Delete)

	notifications := NewDomainGroup("notifications", "/notifications")
	notifications.POST("", admin, h.Notification.Create)
	notifications.GET("", h.Notification.List)
	notifications.GET("/user/:user_id", h.Notification.ListForUser)
	notifications.PATCH("/:id/read", adminOrUser, h.Notification.MarkRead)
	notifications.DELETE("/:id", adminOrUser, h.Notification.Delete)

	activity := NewDomainGroup("activity-log", "/activity-log").Use(admin)
	activity.GET("", h.ActivityLog.List)

	vendors := NewDomainGroup("vendors", "/vendors")
	vendors.GET("", h.Vendor.List)
	vendors.GET("/:id", h.Vendor.GetByID)
	vendors.POST("", admin, h.Vendor.Create)
	vendors.PUT("/:id", admin, h.Vendor.Update)
	vendors.DELETE("/:id", admin, h.Vendor.Delete)

	items := NewDomainGroup("items", "/items")
	items.GET("", h.Item.List)
	items.GET("/:id", h.Item.GetByID)
	items.POST("", admin, h.Item.Create)
	items.PUT("/:id", admin, h.Item.Update)
	items.DELETE("/:id", admin, h.Item.Delete)

	vendorItems := NewDomainGroup("vendor-items", "/vendor-items")
	vendorItems.POST("", admin, h.VendorItem.Create)
	vendorItems.GET("", h.VendorItem.List)
	vendorItems.GET("/:id", h.VendorItem.GetByID)
	vendorItems.PUT("/:id", admin, h.VendorItem.Update)
	vendorItems.DELETE("/:id", admin, h.VendorItem.Delete)

	orders := NewDomainGroup("purchase-orders", "/po")
	orders.POST("", admin, h.PurchaseOrder.Create)
	orders.GET("", h.PurchaseOrder.List)
	orders.GET("/:id", h.PurchaseOrder.GetByID)
	orders.PUT("/:id", admin, h.PurchaseOrder.Update)
	orders.DELETE("/:id", admin, h.PurchaseOrder.Delete)
	orders.GET("/:id/items", h.PurchaseOrder.ListItems)
	orders.POST("/:id/items", admin, h.PurchaseOrder.AddItem)
	orders.PUT("/items/:item_id", admin, h.PurchaseOrder.UpdateItem)
	orders.DELETE("/items/:item_id", admin, h.PurchaseOrder.RemoveItem)

	asn := NewDomainGroup("asn", "/asn")
	asn.POST("", admin, h.ASN.Create)
	asn.GET("", h.ASN.List)
	asn.GET("/:id", h.ASN.GetByID)
	asn.PUT("/:id", admin, h.ASN.Update)
	asn.DELETE("/:id", admin, h.ASN.Delete)

	locations := NewDomainGroup("locations", "/locations")
	locations.POST("", admin, h.Location.Create)
	locations.GET("", h.Location.List)
	locations.GET("/:id", h.Location.GetByID)
	locations.PUT("/:id", admin, h.Location.Update)
	locations.DELETE("/:id", admin, h.Location.Delete)

	inventory := NewDomainGroup("inventory", "/inventory")
	inventory.POST("", admin, h.Inventory.Create)
	inventory.GET("", h.Inventory.List)
	inventory.GET("/summary", h.Inventory.Summary)
	inventory.GET("/item/:item_id", h.Inventory.ByItem)
	inventory.GET("/:id", h.Inventory.GetByID)
	inventory.PUT("/:id", admin, h.Inventory.Update)
	inventory.DELETE("/:id", admin, h.Inventory.Delete)

	rules := NewDomainGroup("stock-rules", "/stock-rules")
	rules.GET("", adminOrManager, h.StockRule.List)
	rules.GET("/:id", adminOrManager, h.StockRule.GetByID)
	rules.POST("", admin, h.StockRule.Create)
	rules.PUT("/:id", admin, h.StockRule.Update)
	rules.DELETE("/:id", admin, h.StockRule.Delete)

	monitor := NewDomainGroup("stock-monitor", "/stock-monitor")
	monitor.GET("/reorder-needed", h.StockRule.ReorderNeeded)

	mrns := NewDomainGroup("mrns", "/mrns")
	mrns.POST("", admin, h.MRN.Create)
	mrns.GET("", h.MRN.List)
	mrns.GET("/:id", h.MRN.GetByID)
	mrns.PUT("/:id", admin, h.MRN.Update)
	mrns.DELETE("/:id", admin, h.MRN.Delete)

	binning := NewDomainGroup("binning-logs", "/binning-logs")
	binning.POST("", admin, h.Binning.Bin)
	binning.GET("", h.Binning.List)

	reports := NewDomainGroup("reports", "/reports")
	reports.GET("/:type", h.Report.Generate)

	cleanup := NewDomainGroup("cleanup", "/cleanup").Use(admin)
	cleanup.POST("/run", h.Cleanup.Run)
	cleanup.GET("/test", h.Cleanup.Test)
	cleanup.GET("/status", h.Cleanup.Status)
	cleanup.GET("/deletion-logs", h.Cleanup.DeletionLogs)

	r.Register(authRoutes).
		Register(users).
		Register(notifications).
		Register(activity).
		Register(vendors).
		Register(items).
		Register(vendorItems).
		Register(orders).
		Register(asn).
		Register(locations).
		Register(inventory).
		Register(rules).
		Register(monitor).
		Register(mrns).
		Register(binning).
		Register(reports).
		Register(cleanup)
}
