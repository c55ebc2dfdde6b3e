package models

import (
	"time"

	"gorm.io/gorm"
)

const DefaultLowStockThreshold = 10

type Product struct {
	gorm.Model
	Name              string    `json:"name" binding:"required"`
	Description       string    `json:"description"`
	Price             float64   `json:"price" binding:"required,gt=0"`
	Unit              string    `json:"unit" binding:"required"`
	Category          string    `json:"category" binding:"required"`
	FarmerID          uint      `json:"farmerId" gorm:"index"`
	FarmerName        string    `json:"farmerName"`
	Stock             int       `json:"stock"`
	LowStockThreshold int       `json:"lowStockThreshold" gorm:"default:10"`
	IsOrganic         bool      `json:"isOrganic"`
	HarvestDate       string    `json:"harvestDate"`
	ImageURL          string    `json:"imageUrl"`
	AddedDate         time.Time `json:"addedDate"`
}

// Threshold applies the default when a product was stored without one.
func (p *Product) Threshold() int {
	if p.LowStockThreshold <= 0 {
		return DefaultLowStockThreshold
	}
	return p.LowStockThreshold
}

func (p *Product) IsLowStock() bool {
	return p.Stock <= p.Threshold()
}
