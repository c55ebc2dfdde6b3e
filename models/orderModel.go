package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"
)

// Order IDs are allocated as max(existing, OrderIDFloor)+1 so the very
// first order of a fresh installation is numbered 1001.
const OrderIDFloor = 1000

type Order struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID          uint      `json:"userId" gorm:"index"`
	UserName        string    `json:"userName"`
	FarmerID        uint      `json:"farmerId" gorm:"index"`
	FarmerName      string    `json:"farmerName"`
	Status          string    `json:"status"`
	OrderDate       time.Time `json:"orderDate"`
	DeliveryDate    time.Time `json:"deliveryDate"`
	DeliveryAddress string    `json:"deliveryAddress"`

	// Frozen at creation, never recomputed.
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	// {rating, comment, date} once the customer rates the farmer.
	FarmerRating datatypes.JSON `json:"farmerRating,omitempty"`
}

type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   uint    `json:"orderId" gorm:"index"`
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Unit      string  `json:"unit"`
	Quantity  int     `json:"quantity"`
}

// OrderRatingSnapshot is the blob stored in Order.FarmerRating.
type OrderRatingSnapshot struct {
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}
