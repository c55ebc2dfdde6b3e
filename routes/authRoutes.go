package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/controllers"
	"github.com/greenvalley/farmtodoor-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.SendPasswordResetLink)
		auth.POST("/reset-password/:resetToken", controllers.ResetPassword)
		auth.GET("/profile", middlewares.RequireAuth(), controllers.GetProfile)
		auth.PUT("/profile", middlewares.RequireAuth(), controllers.UpdateProfile)
	}
}
