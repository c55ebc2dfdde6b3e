package repository

import (
	"strings"

	"github.com/greenvalley/farmtodoor-api/models"
	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) Create(user *models.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListByRole(role string) ([]models.User, error) {
	var users []models.User
	err := r.DB.Where("role = ?", role).Order("created_at asc").Find(&users).Error
	return users, err
}

func (r *UserRepository) SetFarmerActive(farmerID uint, active bool) (int64, error) {
	result := r.DB.Model(&models.User{}).
		Where("id = ? AND role = ?", farmerID, models.RoleFarmer).
		Update("is_active", active)
	return result.RowsAffected, result.Error
}

func (r *UserRepository) AppendRating(tx *gorm.DB, rating *models.FarmerRating) error {
	return tx.Create(rating).Error
}

// RatingAggregate returns the arithmetic mean and count of a farmer's ratings.
func (r *UserRepository) RatingAggregate(tx *gorm.DB, farmerID uint) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := tx.Model(&models.FarmerRating{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("farmer_id = ?", farmerID).
		Scan(&row).Error
	return row.Avg, row.Count, err
}

func (r *UserRepository) UpdateRatingAggregate(tx *gorm.DB, farmerID uint, avg float64, count int64) error {
	return tx.Model(&models.User{}).Where("id = ?", farmerID).Updates(map[string]any{
		"rating":        avg,
		"total_ratings": count,
	}).Error
}
