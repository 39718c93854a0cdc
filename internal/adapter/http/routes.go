package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"lab-inventory/internal/adapter/middleware"
	"lab-inventory/internal/domain/user"
	"lab-inventory/internal/metrics"
	"lab-inventory/internal/usecase/account"
	"lab-inventory/internal/usecase/auth"
	ucpermission "lab-inventory/internal/usecase/permission"
	ucrequest "lab-inventory/internal/usecase/request"
	ucsnapshot "lab-inventory/internal/usecase/snapshot"
	"lab-inventory/internal/usecase/stock"
)

type Deps struct {
	Auth        *auth.Usecase
	Requests    *ucrequest.Usecase
	Stock       *stock.Usecase
	Accounts    *account.Usecase
	Departments *ucpermission.Usecase
	Snapshots   *ucsnapshot.Usecase

	DB    Pinger
	Redis redis.UniversalClient // nil disables Idempotency-Key handling

	IdempotencyTTL time.Duration
	AllowedOrigins []string
	LoginLimiter   *middleware.RateLimiter
	Logger         zerolog.Logger
}

func NewServer(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(d.Logger)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(middleware.Metrics())
	e.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:      "0",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	if len(d.AllowedOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: d.AllowedOrigins,
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.HeaderIdempotencyKey},
		}))
	}
	e.Use(echomw.BodyLimit("2M"))

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d Deps) {
	h := NewHandler(d.DB)
	e.GET("/health", h.Health)
	e.GET("/health/ready", h.Ready)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	authH := NewAuthHandler(d.Auth)
	limiter := d.LoginLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(30, 5*time.Minute, "Too many authentication attempts. Try again shortly.")
	}
	e.POST("/api/auth/login", authH.Login, limiter.Middleware())

	mws := []echo.MiddlewareFunc{middleware.JWTAuth(d.Auth)}
	if d.Redis != nil {
		mws = append(mws, middleware.Idempotency(d.Redis, d.IdempotencyTTL))
	}
	api := e.Group("/api", mws...)
	adminOnly := middleware.RequireRole(user.RoleAdmin)

	api.GET("/auth/me", authH.Me)

	snapH := NewSnapshotHandler(d.Snapshots)
	api.GET("/bootstrap", snapH.Bootstrap)
	api.GET("/admin/backup/export", snapH.Export, adminOnly)
	api.POST("/admin/backup/import", snapH.Import, adminOnly)
	api.POST("/admin/reset", snapH.Reset, adminOnly)

	reqH := NewRequestHandler(d.Requests)
	api.POST("/requests", reqH.Submit)
	api.POST("/requests/:id/review", reqH.Review, adminOnly)

	invH := NewInventoryHandler(d.Stock)
	api.POST("/inventory", invH.Create, adminOnly)
	api.PATCH("/inventory/:id", invH.Update, adminOnly)

	userH := NewUserHandler(d.Accounts)
	api.POST("/users", userH.Create, adminOnly)
	api.PATCH("/users/:id", userH.Update, adminOnly)
	api.POST("/users/:id/toggle-status", userH.ToggleStatus, adminOnly)

	deptH := NewDepartmentHandler(d.Departments)
	api.GET("/departments", deptH.List, adminOnly)
	api.POST("/departments", deptH.Create, adminOnly)
	api.PATCH("/permissions/:department", deptH.UpdatePermissions, adminOnly)
}
