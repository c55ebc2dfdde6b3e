package repository

import (
	"errors"

	"github.com/greenvalley/farmtodoor-api/models"
	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) Items(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&items).Error
	return items, err
}

// Item returns the user's line for a product, or nil when there is none.
func (r *CartRepository) Item(userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) Save(item *models.CartItem) error {
	return r.DB.Save(item).Error
}

func (r *CartRepository) Remove(userID, productID uint) error {
	return r.DB.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

func (r *CartRepository) Clear(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
