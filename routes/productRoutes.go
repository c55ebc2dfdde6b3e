package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/controllers"
	"github.com/greenvalley/farmtodoor-api/middlewares"
	"github.com/greenvalley/farmtodoor-api/models"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)

	farmerOnly := middlewares.RequireAuth(models.RoleFarmer, models.RoleAdmin)
	server.POST("/product", farmerOnly, controllers.CreateProduct)
	server.PATCH("/product/:id", farmerOnly, controllers.UpdateProduct)
	server.DELETE("/product/:id", farmerOnly, controllers.DeleteProduct)
	server.POST("/product/:id/image", farmerOnly, controllers.UploadProductImage)

	farmer := server.Group("/farmer", middlewares.RequireAuth(models.RoleFarmer))
	{
		farmer.GET("/products", controllers.GetFarmerProducts)
		farmer.GET("/products/low-stock", controllers.GetLowStockProducts)
	}
}
