package services

import (
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/greenvalley/farmtodoor-api/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One in-memory database per connection otherwise.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.FarmerRating{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{}, &models.OrderItem{},
		&models.Notification{}, &models.LowStockAlert{},
	))
	return db
}

type fixtures struct {
	db            *gorm.DB
	users         *repository.UserRepository
	products      *repository.ProductRepository
	carts         *repository.CartRepository
	orders        *repository.OrderRepository
	notifications *repository.NotificationRepository
}

func newFixtures(t *testing.T) *fixtures {
	db := newTestDB(t)
	return &fixtures{
		db:            db,
		users:         repository.NewUserRepository(db),
		products:      repository.NewProductRepository(db),
		carts:         repository.NewCartRepository(db),
		orders:        repository.NewOrderRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
}

func (f *fixtures) createCustomer(t *testing.T, address string) *models.User {
	t.Helper()
	user := models.User{
		Name:    "Test Customer",
		Email:   "test-customer@example.com",
		Role:    models.RoleUser,
		Address: address,
	}
	require.NoError(t, f.db.Create(&user).Error)
	return &user
}

func (f *fixtures) createFarmer(t *testing.T, name, farmName string) *models.User {
	t.Helper()
	farmer := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Role:     models.RoleFarmer,
		FarmName: farmName,
		IsActive: true,
	}
	require.NoError(t, f.db.Create(&farmer).Error)
	return &farmer
}

func (f *fixtures) createProduct(t *testing.T, farmer *models.User, name string, price float64, stock, threshold int) *models.Product {
	t.Helper()
	product := models.Product{
		Name:              name,
		Price:             price,
		Unit:              "per lb",
		Category:          "vegetables",
		FarmerID:          farmer.ID,
		FarmerName:        farmer.DisplayName(),
		Stock:             stock,
		LowStockThreshold: threshold,
		AddedDate:         time.Now(),
	}
	require.NoError(t, f.db.Create(&product).Error)
	return &product
}

func (f *fixtures) cartService() *CartService {
	return NewCartService(f.db, f.carts, f.products)
}

func (f *fixtures) checkoutService() *CheckoutService {
	return &CheckoutService{
		DB:            f.db,
		Users:         f.users,
		Products:      f.products,
		Carts:         f.carts,
		Orders:        f.orders,
		Notifications: f.notifications,
		Scanner:       NewLowStockService(f.products, f.notifications),
	}
}

func (f *fixtures) stockOf(t *testing.T, productID uint) int {
	t.Helper()
	product, err := f.products.FindByID(productID)
	require.NoError(t, err)
	return product.Stock
}

// capturePublisher records published notifications for assertions.
type capturePublisher struct {
	mu        sync.Mutex
	published []models.Notification
}

func (p *capturePublisher) Publish(n models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, n)
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}
