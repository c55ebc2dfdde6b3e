package repository

import (
	"time"

	"github.com/greenvalley/farmtodoor-api/models"
	"gorm.io/gorm"
)

type ProductRepository struct{ DB *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{DB: db} }

func (r *ProductRepository) Create(product *models.Product) error {
	return r.DB.Create(product).Error
}

func (r *ProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAvailable looks a product up through the marketplace scope, so
// listings of deactivated farmers behave as if deleted.
func (r *ProductRepository) FindAvailable(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.Scopes(activeFarmerScope).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Save(product *models.Product) error {
	return r.DB.Save(product).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.DB.Delete(&models.Product{}, id).Error
}

func (r *ProductRepository) ListByFarmer(farmerID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.Where("farmer_id = ?", farmerID).Order("added_date desc").Find(&products).Error
	return products, err
}

// activeFarmerScope hides listings of deactivated farmers.
func activeFarmerScope(db *gorm.DB) *gorm.DB {
	return db.Where("farmer_id NOT IN (?)",
		db.Session(&gorm.Session{NewDB: true}).
			Model(&models.User{}).
			Select("id").
			Where("role = ? AND is_active = ?", models.RoleFarmer, false))
}

func (r *ProductRepository) List(search, category, stockStatus string, limit, offset int) ([]models.Product, int64, error) {
	query := r.DB.Model(&models.Product{}).Scopes(activeFarmerScope)
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	switch stockStatus {
	case "in-stock":
		query = query.Where("stock > low_stock_threshold")
	case "low-stock":
		query = query.Where("stock <= low_stock_threshold AND stock > 0")
	case "out-of-stock":
		query = query.Where("stock = 0")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.Order("added_date desc").Limit(limit).Offset(offset).Find(&products).Error
	return products, count, err
}

// DecrementStockGuard atomically takes qty units off a product's stock.
// The marketplace scope applies, so a deactivated farmer's listing
// counts as gone. Zero rows affected means the product is unavailable
// or understocked; the caller must treat that as a failed checkout.
func (r *ProductRepository) DecrementStockGuard(tx *gorm.DB, productID uint, qty int) (int64, error) {
	result := tx.Model(&models.Product{}).
		Scopes(activeFarmerScope).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	return result.RowsAffected, result.Error
}

func (r *ProductRepository) ListLowStock() ([]models.Product, error) {
	var products []models.Product
	err := r.DB.Where("stock <= low_stock_threshold").Find(&products).Error
	return products, err
}

func (r *ProductRepository) ListLowStockByFarmer(farmerID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.Where("farmer_id = ? AND stock <= low_stock_threshold", farmerID).Find(&products).Error
	return products, err
}

// DeleteAddedBefore removes listings whose AddedDate is older than the
// cutoff. Produce listings expire 18 hours after they are added.
func (r *ProductRepository) DeleteAddedBefore(cutoff time.Time) (int64, error) {
	result := r.DB.Where("added_date < ?", cutoff).Delete(&models.Product{})
	return result.RowsAffected, result.Error
}
