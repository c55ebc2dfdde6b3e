package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/controllers"
	"github.com/greenvalley/farmtodoor-api/middlewares"
	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/greenvalley/farmtodoor-api/ws"
)

func NotificationRoutes(server *gin.Engine, hub *ws.NotifyHub) {
	notify := server.Group("/notifications", middlewares.RequireAuth())
	{
		notify.GET("", controllers.GetMyNotifications)
		notify.PATCH("/:id/read", controllers.MarkNotificationRead)
	}

	farmer := server.Group("/farmer", middlewares.RequireAuth(models.RoleFarmer))
	{
		farmer.GET("/alerts", controllers.GetLowStockAlerts)
	}

	server.GET("/ws/notifications", middlewares.RequireAuth(models.RoleFarmer), hub.Serve)
}
