package repository

import (
	"github.com/greenvalley/farmtodoor-api/models"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// NextID allocates the next order number: one past the highest existing
// id, or 1001 when no order has ever been placed.
func (r *OrderRepository) NextID(tx *gorm.DB) (uint, error) {
	var next uint
	err := tx.Model(&models.Order{}).
		Select("COALESCE(MAX(id), ?) + 1", models.OrderIDFloor).
		Scan(&next).Error
	return next, err
}

func (r *OrderRepository) Create(tx *gorm.DB, order *models.Order) error {
	return tx.Create(order).Error
}

func (r *OrderRepository) FindByID(orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.Preload("Items").First(&order, orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindForUser(tx *gorm.DB, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := tx.Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListForUser(userID uint, sortOrder string) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date " + sortOrder).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListForFarmer(farmerID uint, sortOrder string) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.Preload("Items").
		Where("farmer_id = ?", farmerID).
		Order("order_date " + sortOrder).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) List(search, sortOrder string, limit, offset int) ([]models.Order, int64, error) {
	query := r.DB.Model(&models.Order{})
	if search != "" {
		query = query.Where("id LIKE ?", "%"+search+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.Preload("Items").
		Order("order_date " + sortOrder).
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, count, err
}

func (r *OrderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.Preload("Items").Order("order_date asc").Find(&orders).Error
	return orders, err
}

// UpdateStatusGuard advances an order only when it is still in the
// expected state; zero rows affected means an invalid or conflicting
// transition.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	result := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *OrderRepository) SetFarmerRating(tx *gorm.DB, orderID uint, blob []byte) error {
	return tx.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("farmer_rating", blob).Error
}

func (r *OrderRepository) Delete(orderID uint) error {
	return r.DB.Delete(&models.Order{}, orderID).Error
}

func (r *OrderRepository) CountUndelivered() (int64, error) {
	var count int64
	err := r.DB.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusDelivered).
		Count(&count).Error
	return count, err
}
