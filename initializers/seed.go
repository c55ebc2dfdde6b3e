package initializers

import (
	"log"
	"time"

	"github.com/greenvalley/farmtodoor-api/models"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatal("Failed to hash seed password: ", err)
	}
	return string(hash)
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatal("Invalid seed date: ", err)
	}
	return t
}

// SeedDemoData loads the demo accounts, Green Valley Farm's catalog and
// a few historical orders. It only runs against an empty database.
func SeedDemoData() {
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount > 0 {
		return
	}

	demoPassword := mustHash("demo123")

	customer := models.User{
		Name:       "John Customer",
		Email:      "customer@demo.com",
		Password:   demoPassword,
		Role:       models.RoleUser,
		Address:    "123 Main St, City, State",
		Phone:      "+1234567890",
		JoinedDate: date("2024-01-15"),
	}
	farmer := models.User{
		Name:         "Sarah Farmer",
		Email:        "farmer@demo.com",
		Password:     demoPassword,
		Role:         models.RoleFarmer,
		FarmName:     "Green Valley Farm",
		Location:     "Rural County, State",
		Phone:        "+1234567891",
		JoinedDate:   date("2024-01-10"),
		Rating:       4.5,
		TotalRatings: 12,
		IsActive:     true,
	}
	admin := models.User{
		Name:       "Admin User",
		Email:      "admin@demo.com",
		Password:   demoPassword,
		Role:       models.RoleAdmin,
		Department: "Platform Management",
		Phone:      "+1234567892",
		JoinedDate: date("2024-01-01"),
	}
	for _, user := range []*models.User{&customer, &farmer, &admin} {
		if err := DB.Create(user).Error; err != nil {
			log.Fatal("Failed to seed users: ", err)
		}
	}

	now := time.Now()
	catalog := []models.Product{
		{Name: "Organic Tomatoes", Description: "Fresh, juicy organic tomatoes grown without pesticides", Price: 4.99, Unit: "per lb", Category: "vegetables", Stock: 50, LowStockThreshold: 10, IsOrganic: true, HarvestDate: "2024-12-20"},
		{Name: "Fresh Lettuce", Description: "Crisp romaine lettuce perfect for salads", Price: 2.99, Unit: "per head", Category: "vegetables", Stock: 30, LowStockThreshold: 5, IsOrganic: true, HarvestDate: "2024-12-22"},
		{Name: "Farm Fresh Eggs", Description: "Free-range chicken eggs from happy hens", Price: 6.99, Unit: "per dozen", Category: "dairy", Stock: 25, LowStockThreshold: 12, IsOrganic: true, HarvestDate: "2024-12-23"},
		{Name: "Sweet Carrots", Description: "Crunchy orange carrots packed with vitamins", Price: 3.49, Unit: "per lb", Category: "vegetables", Stock: 40, LowStockThreshold: 15, IsOrganic: false, HarvestDate: "2024-12-21"},
		{Name: "Red Apples", Description: "Sweet and crisp red apples, perfect for snacking", Price: 5.99, Unit: "per lb", Category: "fruits", Stock: 60, LowStockThreshold: 20, IsOrganic: true, HarvestDate: "2024-12-19"},
		{Name: "Fresh Spinach", Description: "Nutrient-rich baby spinach leaves", Price: 3.99, Unit: "per bag", Category: "vegetables", Stock: 20, LowStockThreshold: 8, IsOrganic: true, HarvestDate: "2024-12-22"},
	}
	productIDs := make([]uint, len(catalog))
	for i := range catalog {
		catalog[i].FarmerID = farmer.ID
		catalog[i].FarmerName = farmer.DisplayName()
		catalog[i].AddedDate = now
		if err := DB.Create(&catalog[i]).Error; err != nil {
			log.Fatal("Failed to seed products: ", err)
		}
		productIDs[i] = catalog[i].ID
	}

	orders := []models.Order{
		{
			ID: 1001, UserID: customer.ID, UserName: customer.Name,
			FarmerID: farmer.ID, FarmerName: farmer.DisplayName(),
			Status: models.OrderStatusDelivered, OrderDate: date("2024-12-20"), DeliveryDate: date("2024-12-22"),
			DeliveryAddress: customer.Address,
			Subtotal:        19.47, Tax: 1.56, DeliveryFee: 2.99, Total: 24.02,
			Items: []models.OrderItem{
				{ProductID: productIDs[0], Name: "Organic Tomatoes", Price: 4.99, Unit: "per lb", Quantity: 2},
				{ProductID: productIDs[2], Name: "Farm Fresh Eggs", Price: 6.99, Unit: "per dozen", Quantity: 1},
				{ProductID: productIDs[3], Name: "Sweet Carrots", Price: 3.49, Unit: "per lb", Quantity: 1},
			},
		},
		{
			ID: 1002, UserID: customer.ID, UserName: customer.Name,
			FarmerID: farmer.ID, FarmerName: farmer.DisplayName(),
			Status: models.OrderStatusProcessing, OrderDate: date("2024-12-23"), DeliveryDate: date("2024-12-25"),
			DeliveryAddress: customer.Address,
			Subtotal:        14.98, Tax: 1.20, DeliveryFee: 2.99, Total: 19.17,
			Items: []models.OrderItem{
				{ProductID: productIDs[1], Name: "Fresh Lettuce", Price: 2.99, Unit: "per head", Quantity: 2},
				{ProductID: productIDs[4], Name: "Red Apples", Price: 5.99, Unit: "per lb", Quantity: 1},
				{ProductID: productIDs[5], Name: "Fresh Spinach", Price: 3.99, Unit: "per bag", Quantity: 1},
			},
		},
		{
			ID: 1003, UserID: customer.ID, UserName: customer.Name,
			FarmerID: farmer.ID, FarmerName: farmer.DisplayName(),
			Status: models.OrderStatusPending, OrderDate: date("2024-12-24"), DeliveryDate: date("2024-12-26"),
			DeliveryAddress: customer.Address,
			Subtotal:        7.98, Tax: 0.64, DeliveryFee: 2.99, Total: 11.61,
			Items: []models.OrderItem{
				{ProductID: productIDs[1], Name: "Fresh Lettuce", Price: 2.99, Unit: "per head", Quantity: 1},
				{ProductID: productIDs[0], Name: "Organic Tomatoes", Price: 4.99, Unit: "per lb", Quantity: 1},
			},
		},
	}
	for i := range orders {
		if err := DB.Create(&orders[i]).Error; err != nil {
			log.Fatal("Failed to seed orders: ", err)
		}
	}

	log.Println("Demo data seeded.")
}
