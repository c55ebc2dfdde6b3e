package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/greenvalley/farmtodoor-api/repository"
)

// ListingTTL is how long a produce listing stays on the marketplace
// before the sweep removes it.
const ListingTTL = 18 * time.Hour

type LowStockService struct {
	Products      *repository.ProductRepository
	Notifications *repository.NotificationRepository
	Publisher     NotificationPublisher
}

func NewLowStockService(products *repository.ProductRepository, notifications *repository.NotificationRepository) *LowStockService {
	return &LowStockService{Products: products, Notifications: notifications}
}

// Scan raises an alert for every product at or below its threshold.
// Each product alerts exactly once: the keyed alert record is never
// cleared, so replenishing and dropping again does not re-fire.
func (s *LowStockService) Scan() (int, error) {
	products, err := s.Products.ListLowStock()
	if err != nil {
		return 0, err
	}

	created := 0
	for _, product := range products {
		alert := models.LowStockAlert{
			AlertKey:     fmt.Sprintf("low-stock-%d", product.ID),
			ProductID:    product.ID,
			ProductName:  product.Name,
			FarmerID:     product.FarmerID,
			FarmerName:   product.FarmerName,
			CurrentStock: product.Stock,
			Threshold:    product.Threshold(),
			Message:      fmt.Sprintf("Low stock alert: %s has only %d units remaining", product.Name, product.Stock),
			Date:         time.Now(),
		}

		fresh, err := s.Notifications.CreateAlertOnce(&alert)
		if err != nil {
			return created, err
		}
		if !fresh {
			continue
		}
		created++

		n := models.Notification{
			UID:      uuid.NewString(),
			Type:     models.NotificationTypeLowStock,
			Message:  alert.Message,
			FarmerID: product.FarmerID,
			Date:     time.Now(),
		}
		if err := s.Notifications.CreateNotification(&n); err != nil {
			return created, err
		}
		if s.Publisher != nil {
			s.Publisher.Publish(n)
		}
	}
	return created, nil
}

// SweepExpired drops listings older than ListingTTL.
func (s *LowStockService) SweepExpired() (int64, error) {
	return s.Products.DeleteAddedBefore(time.Now().Add(-ListingTTL))
}
