package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/khanonymous/relay-backend/internal/config"
	"github.com/khanonymous/relay-backend/internal/handler"
	"github.com/khanonymous/relay-backend/internal/middleware"
	"github.com/khanonymous/relay-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	eventHandler *handler.EventHandler,
	userHandler *handler.UserHandler,
	adminHandler *handler.AdminHandler,
	jwtManager *jwt.Manager,
	cfg *config.Config,
) {
	api := router.Group("/api/v1")

	// Event ingestion (messaging gateway only)
	events := api.Group("/events", middleware.GatewayAuth(cfg.Gateway.APIKey))
	{
		events.POST("/message", eventHandler.PostMessage)
		events.POST("/reply", eventHandler.PostReply)
		events.POST("/block", eventHandler.PostBlock)
		events.POST("/report", eventHandler.PostReport)
	}

	// User-facing reads and preference writes (gateway-proxied)
	users := api.Group("/users", middleware.GatewayAuth(cfg.Gateway.APIKey))
	{
		users.GET("/:id/profile", userHandler.GetProfile)
		users.PUT("/:id/language", userHandler.SetLanguage)
	}

	links := api.Group("/links", middleware.GatewayAuth(cfg.Gateway.APIKey))
	{
		links.POST("/:id/click", userHandler.PostLinkClick)
	}

	// Administrative surface
	admin := api.Group("/admin", middleware.AdminAuth(cfg.Admin.APIKey, jwtManager))
	{
		admin.GET("/stats/today", adminHandler.GetTodayStats)
		admin.GET("/stats/weekly", adminHandler.GetWeeklyStats)
		admin.GET("/stats/totals", adminHandler.GetTotals)
		admin.GET("/top/senders", adminHandler.GetTopSenders)
		admin.GET("/top/receivers", adminHandler.GetTopReceivers)
		admin.GET("/reports", adminHandler.ListReports)
		admin.GET("/banned", adminHandler.ListBanned)
		admin.GET("/recipients", adminHandler.ListRecipients)
		admin.POST("/users/:id/ban", adminHandler.BanUser)
		admin.DELETE("/users/:id/ban", adminHandler.UnbanUser)
		admin.GET("/users/:id/stats", adminHandler.GetUserStats)
	}
}
