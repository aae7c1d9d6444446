package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"pousada/internal/infra/config"
	"pousada/internal/infra/obs"
)

type RoomsHTTP interface {
	Search(c *gin.Context)
	Calendar(c *gin.Context)
	Packages(c *gin.Context)
}

type CheckoutHTTP interface {
	Quote(c *gin.Context)
	ValidateDiscount(c *gin.Context)
}

type ReservationHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
}

type AdminHTTP interface {
	SetOverride(c *gin.Context)
	ClearOverride(c *gin.Context)
	ReplaceOverrides(c *gin.Context)
	UpsertDiscount(c *gin.Context)
	DeleteDiscount(c *gin.Context)
	Undo(c *gin.Context)
	Redo(c *gin.Context)
}

type Handlers struct {
	Rooms        RoomsHTTP
	Checkout     CheckoutHTTP
	Reservations ReservationHTTP
	Admin        AdminHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, metrics *obs.Metrics, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(obsMW, health, metrics, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewRouter(obsMW obs.Middleware, health obs.HealthHandlers, metrics *obs.Metrics, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	if metrics != nil {
		router.Use(metrics.HTTP())
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"Location",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := router.Group("/api/v1")
	if h.Rooms != nil {
		api.GET("/rooms", h.Rooms.Search)
		api.GET("/rooms/:id/calendar", h.Rooms.Calendar)
		api.GET("/packages", h.Rooms.Packages)
	}
	if h.Checkout != nil {
		api.POST("/checkout/quote", h.Checkout.Quote)
		api.POST("/discounts/validate", h.Checkout.ValidateDiscount)
	}
	if h.Reservations != nil {
		api.POST("/reservations", h.Reservations.Create)
		api.GET("/reservations/:id", h.Reservations.Get)
	}

	adminGroup := api.Group("/admin")
	if h.Reservations != nil {
		adminGroup.POST("/reservations/:id/confirm", h.Reservations.Confirm)
		adminGroup.POST("/reservations/:id/cancel", h.Reservations.Cancel)
	}
	if h.Admin != nil {
		adminGroup.PUT("/rooms/:id/overrides", h.Admin.ReplaceOverrides)
		adminGroup.PUT("/rooms/:id/overrides/:date", h.Admin.SetOverride)
		adminGroup.DELETE("/rooms/:id/overrides/:date", h.Admin.ClearOverride)
		adminGroup.PUT("/discounts/:code", h.Admin.UpsertDiscount)
		adminGroup.DELETE("/discounts/:code", h.Admin.DeleteDiscount)
		adminGroup.POST("/undo", h.Admin.Undo)
		adminGroup.POST("/redo", h.Admin.Redo)
	}
	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
