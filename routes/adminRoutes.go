package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/controllers"
	"github.com/greenvalley/farmtodoor-api/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/stats", controllers.GetPlatformStats)
		admin.GET("/farmers", controllers.GetFarmers)
		admin.GET("/users", controllers.GetUsers)
		admin.PATCH("/farmers/:farmerId/deactivate", controllers.DeactivateFarmer)
		admin.PATCH("/farmers/:farmerId/reactivate", controllers.ReactivateFarmer)
		admin.GET("/orders", controllers.GetOrders)
		admin.GET("/orders/undelivered", controllers.GetUndeliveredOrders)
		admin.DELETE("/orders/:orderId", controllers.DeleteOrder)
		admin.GET("/reports/sales", controllers.ExportSalesReport)
	}
}
