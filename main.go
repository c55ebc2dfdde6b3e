package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/controllers"
	"github.com/greenvalley/farmtodoor-api/initializers"
	"github.com/greenvalley/farmtodoor-api/routes"
	"github.com/greenvalley/farmtodoor-api/services"
	"github.com/greenvalley/farmtodoor-api/ws"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
	initializers.SeedDemoData()
}

func main() {
	hub := ws.NewNotifyHub()
	go hub.Run()

	notifier := services.NewNotifier(nil)
	notifier.Start(2)
	defer notifier.Close()

	controllers.Init(initializers.DB, notifier, hub)

	interval := time.Minute
	if raw := os.Getenv("STOCK_SCAN_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			interval = parsed
		}
	}
	monitor := services.StockMonitor{Scanner: controllers.LowStock(), Interval: interval}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Run(ctx)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "https://www.farmtodoor.store"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.ProductRoutes(server)
	routes.CartRoutes(server)
	routes.OrderRoutes(server)
	routes.NotificationRoutes(server, hub)
	routes.AdminRoutes(server)

	server.Run()
}
