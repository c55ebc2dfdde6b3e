package initializers

import (
	"log"

	"github.com/greenvalley/farmtodoor-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{}, &models.FarmerRating{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{}, &models.OrderItem{},
		&models.Notification{}, &models.LowStockAlert{},
	)
	log.Println("Database synced successfully.")
}
