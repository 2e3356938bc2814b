package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/internal/handler"
	"github.com/meeplemeet/meeplemeet-api/internal/middleware"
	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/pkg/config"
	"github.com/meeplemeet/meeplemeet-api/pkg/logger"
	corsmiddleware "github.com/meeplemeet/meeplemeet-api/pkg/middleware/cors"
	"github.com/meeplemeet/meeplemeet-api/pkg/middleware/ratelimit"
	reqidmiddleware "github.com/meeplemeet/meeplemeet-api/pkg/middleware/requestid"
)

var probePaths = []string{"/health", "/ready", "/metrics"}

func newRouter(cfg *config.Config, logr *zap.Logger, a *app, checks map[string]handler.ReadinessCheck) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, probePaths...))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(a.metrics, probePaths...))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(a.metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	if cfg.RateLimit.Enabled {
		api.Use(ratelimit.Middleware(ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst), logr))
	}
	auth := middleware.JWT(a.auth)

	authHandler := handler.NewAuthHandler(a.auth, a.accounts)
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", auth, authHandler.Logout)
	authGroup.POST("/change-password", auth, authHandler.ChangePassword)
	authGroup.GET("/me", auth, authHandler.Me)

	accountHandler := handler.NewAccountHandler(a.accounts)
	accounts := api.Group("/accounts", auth)
	accounts.GET("/handle/:handle", accountHandler.GetByHandle)
	accounts.GET("/:id", accountHandler.Get)
	accounts.PUT("/:id", middleware.RBAC(middleware.Self, string(models.RoleAdmin)), accountHandler.Update)
	accounts.DELETE("/:id", middleware.RBAC(middleware.Self, string(models.RoleAdmin)), accountHandler.Delete)

	shopHandler := handler.NewShopHandler(a.shops)
	shops := api.Group("/shops")
	shops.GET("", shopHandler.List)
	shops.GET("/:id", shopHandler.Get)
	shops.POST("", auth, shopHandler.Create)
	shops.PUT("/:id", auth, shopHandler.Update)
	shops.DELETE("/:id", auth, shopHandler.Delete)

	rentalHandler := handler.NewRentalHandler(a.rentals)
	// An untyped nil keeps the handler's disabled check working.
	reportHandler := handler.NewReportHandler(nil)
	if a.reports != nil {
		reportHandler = handler.NewReportHandler(a.reports)
	}

	renterHandler := handler.NewSpaceRenterHandler(a.spaceRenters)
	renters := api.Group("/space-renters")
	renters.GET("", renterHandler.List)
	renters.GET("/:id", renterHandler.Get)
	renters.GET("/:id/opening-hours", renterHandler.OpeningHours)
	renters.POST("", auth, renterHandler.Create)
	renters.PUT("/:id", auth, renterHandler.Update)
	renters.DELETE("/:id", auth, renterHandler.Delete)
	renters.GET("/:id/rentals", auth, rentalHandler.ListForSpaceRenter)
	renters.POST("/:id/exports", auth, reportHandler.CreateExport)

	rentals := api.Group("/rentals", auth)
	rentals.POST("", rentalHandler.Create)
	rentals.GET("", rentalHandler.ListMine)
	rentals.POST("/compatibility", rentalHandler.Compatibility)
	rentals.GET("/:id", rentalHandler.Get)
	rentals.GET("/:id/resource", rentalHandler.Resource)
	rentals.POST("/:id/cancel", rentalHandler.Cancel)

	discussionHandler := handler.NewDiscussionHandler(a.discussions)
	sessionHandler := handler.NewSessionHandler(a.sessions)
	discussions := api.Group("/discussions", auth)
	discussions.POST("", discussionHandler.Create)
	discussions.GET("", discussionHandler.ListMine)
	discussions.GET("/:id", discussionHandler.Get)
	discussions.PUT("/:id", discussionHandler.Update)
	discussions.DELETE("/:id", discussionHandler.Delete)
	discussions.POST("/:id/participants", discussionHandler.AddParticipant)
	discussions.DELETE("/:id/participants/:accountId", discussionHandler.RemoveParticipant)
	discussions.GET("/:id/messages", discussionHandler.ListMessages)
	discussions.POST("/:id/messages", discussionHandler.SendMessage)
	discussions.GET("/:id/session", sessionHandler.Get)
	discussions.POST("/:id/session", sessionHandler.Create)
	discussions.PUT("/:id/session", sessionHandler.Update)
	discussions.DELETE("/:id/session", sessionHandler.Delete)
	discussions.POST("/:id/session/join", sessionHandler.Join)

	notificationHandler := handler.NewNotificationHandler(a.notifications)
	notifications := api.Group("/notifications", auth)
	notifications.POST("", notificationHandler.Send)
	notifications.GET("", notificationHandler.ListMine)
	notifications.POST("/:id/read", notificationHandler.MarkRead)
	notifications.POST("/:id/accept", notificationHandler.Accept)
	notifications.DELETE("/:id", notificationHandler.Delete)

	exports := api.Group("/exports")
	exports.GET("/download/:token", reportHandler.Download)
	exports.GET("/:id", auth, reportHandler.Status)

	api.GET("/admin/metrics", auth, middleware.RequireRoles(models.RoleAdmin), metricsHandler.Summary)

	return r
}
