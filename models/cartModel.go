package models

import "gorm.io/gorm"

// CartItem is a persisted cart line. Name, price, unit and farmer are
// snapshots taken when the line was first added; quantity is live.
type CartItem struct {
	gorm.Model
	UserID     uint    `json:"userId" gorm:"index"`
	ProductID  uint    `json:"productId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Unit       string  `json:"unit"`
	Quantity   int     `json:"quantity"`
	FarmerID   uint    `json:"farmerId"`
	FarmerName string  `json:"farmerName"`
}

func (c *CartItem) LineTotal() float64 {
	return c.Price * float64(c.Quantity)
}
