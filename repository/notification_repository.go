package repository

import (
	"github.com/greenvalley/farmtodoor-api/models"
	"gorm.io/gorm"
)

type NotificationRepository struct{ DB *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// CreateAlertOnce inserts a low-stock alert unless one with the same key
// already exists. Returns true when a new alert was created.
func (r *NotificationRepository) CreateAlertOnce(alert *models.LowStockAlert) (bool, error) {
	var count int64
	if err := r.DB.Model(&models.LowStockAlert{}).
		Where("alert_key = ?", alert.AlertKey).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := r.DB.Create(alert).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *NotificationRepository) AlertsForFarmer(farmerID uint) ([]models.LowStockAlert, error) {
	var alerts []models.LowStockAlert
	err := r.DB.Where("farmer_id = ?", farmerID).Order("date desc").Find(&alerts).Error
	return alerts, err
}

func (r *NotificationRepository) CreateNotification(n *models.Notification) error {
	return r.DB.Create(n).Error
}

func (r *NotificationRepository) ListForFarmer(farmerID uint) ([]models.Notification, error) {
	var items []models.Notification
	err := r.DB.Where("farmer_id = ?", farmerID).Order("date desc").Find(&items).Error
	return items, err
}

func (r *NotificationRepository) ListForUser(userID uint) ([]models.Notification, error) {
	var items []models.Notification
	err := r.DB.Where("user_id = ?", userID).Order("date desc").Find(&items).Error
	return items, err
}

// MarkRead flips the read flag, but only when the notification is
// addressed to the caller. Someone else's notification counts as not
// found.
func (r *NotificationRepository) MarkRead(id, recipientID uint) (int64, error) {
	result := r.DB.Model(&models.Notification{}).
		Where("id = ? AND (farmer_id = ? OR user_id = ?)", id, recipientID, recipientID).
		Update("read", true)
	return result.RowsAffected, result.Error
}
