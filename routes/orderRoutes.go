package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/controllers"
	"github.com/greenvalley/farmtodoor-api/middlewares"
	"github.com/greenvalley/farmtodoor-api/models"
)

func OrderRoutes(server *gin.Engine) {
	checkout := server.Group("/checkout", middlewares.RequireAuth(models.RoleUser))
	{
		checkout.POST("/preview", controllers.PreviewCheckout)
		checkout.POST("/confirm", controllers.ConfirmCheckout)
	}

	authed := server.Group("/orders", middlewares.RequireAuth())
	{
		authed.GET("", controllers.GetMyOrders)
		authed.GET("/:orderId", controllers.GetOrder)
		authed.POST("/:orderId/rating", controllers.SubmitOrderRating)
		authed.PATCH("/:orderId/status", controllers.UpdateOrderStatus)
	}

	farmer := server.Group("/farmer", middlewares.RequireAuth(models.RoleFarmer))
	{
		farmer.GET("/orders", controllers.GetFarmerOrders)
	}
}
