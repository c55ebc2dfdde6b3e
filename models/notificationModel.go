package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	NotificationTypeLowStock = "low-stock"
	NotificationTypeOrder    = "order"
)

type Notification struct {
	gorm.Model
	UID      string    `json:"uid" gorm:"size:64;uniqueIndex"`
	Type     string    `json:"type"`
	Message  string    `json:"message"`
	FarmerID uint      `json:"farmerId" gorm:"index"`
	UserID   uint      `json:"userId" gorm:"index"`
	Read     bool      `json:"read"`
	Date     time.Time `json:"date"`
}

// LowStockAlert fires once per product when stock falls to or below the
// threshold. Alerts are never cleared or re-fired; CurrentStock and
// Threshold record the state at fire time.
type LowStockAlert struct {
	gorm.Model
	AlertKey     string    `json:"alertKey" gorm:"size:64;uniqueIndex"`
	ProductID    uint      `json:"productId"`
	ProductName  string    `json:"productName"`
	FarmerID     uint      `json:"farmerId" gorm:"index"`
	FarmerName   string    `json:"farmerName"`
	CurrentStock int       `json:"currentStock"`
	Threshold    int       `json:"threshold"`
	Message      string    `json:"message"`
	Date         time.Time `json:"date"`
}
