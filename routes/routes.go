package routes

import (
	"github.com/Anuraj-27/nutriscan27/controllers"
	"github.com/Anuraj-27/nutriscan27/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.GET("/alerts", controllers.ListAlerts)
	}

	// Protected scan routes
	scan := r.Group("/scan")
	scan.Use(middlewares.AuthMiddleware())
	{
		scan.POST("/analyze", controllers.AnalyzeScan)
		scan.POST("/image", controllers.ScanImage)
		scan.GET("/history", controllers.ListScanHistory)
		scan.GET("/history/:id", controllers.GetScanRecord)
	}

	return r
}
