package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/controllers"
	"github.com/greenvalley/farmtodoor-api/middlewares"
	"github.com/greenvalley/farmtodoor-api/models"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.RequireAuth(models.RoleUser))
	{
		cart.GET("", controllers.GetCart)
		cart.POST("", controllers.AddCartItem)
		cart.PATCH("/:productId", controllers.UpdateCartItem)
		cart.DELETE("/:productId", controllers.RemoveCartItem)
		cart.DELETE("", controllers.ClearCart)
	}
}
