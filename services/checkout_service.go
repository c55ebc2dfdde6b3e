package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/greenvalley/farmtodoor-api/repository"
	"github.com/greenvalley/farmtodoor-api/utils"
	"gorm.io/gorm"
)

const (
	TaxRate          = 0.08
	DeliveryFee      = 2.99
	deliveryLeadTime = 48 * time.Hour
)

// NotificationPublisher pushes a stored notification to any live
// listeners. Implementations must not block.
type NotificationPublisher interface {
	Publish(n models.Notification)
}

// CheckoutService drives the checkout flow: Preview shows the summary
// without touching anything, Confirm commits the whole purchase in one
// transaction. Cancelling is simply never calling Confirm.
type CheckoutService struct {
	DB            *gorm.DB
	Users         *repository.UserRepository
	Products      *repository.ProductRepository
	Carts         *repository.CartRepository
	Orders        *repository.OrderRepository
	Notifications *repository.NotificationRepository

	Scanner   *LowStockService      // re-scan after each confirmed order
	Publisher NotificationPublisher // optional live push
}

type CheckoutSummary struct {
	Items            []models.CartItem `json:"items"`
	Subtotal         float64           `json:"subtotal"`
	Tax              float64           `json:"tax"`
	DeliveryFee      float64           `json:"deliveryFee"`
	Total            float64           `json:"total"`
	DeliveryAddress  string            `json:"deliveryAddress"`
	ExpectedDelivery time.Time         `json:"expectedDelivery"`
}

// Preview validates the cart against live stock and returns the order
// summary. Nothing is mutated; a later Confirm re-runs every check.
func (s *CheckoutService) Preview(userID uint) (*CheckoutSummary, error) {
	items, err := s.Carts.Items(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Address == "" {
		return nil, ErrNoAddress
	}

	for _, item := range items {
		product, err := s.Products.FindAvailable(item.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &StockShortfallError{ProductName: item.Name, Requested: item.Quantity, Available: 0}
		}
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, &StockShortfallError{ProductName: item.Name, Requested: item.Quantity, Available: product.Stock}
		}
	}

	subtotal := sumLines(items)
	tax := utils.Round2(subtotal * TaxRate)
	return &CheckoutSummary{
		Items:            items,
		Subtotal:         utils.Round2(subtotal),
		Tax:              tax,
		DeliveryFee:      DeliveryFee,
		Total:            utils.Round2(subtotal + tax + DeliveryFee),
		DeliveryAddress:  user.Address,
		ExpectedDelivery: time.Now().Add(deliveryLeadTime),
	}, nil
}

// Confirm places the order. Stock decrements, order creation and cart
// clearing happen in a single transaction; a guarded decrement losing
// the race rolls the whole purchase back, so no partial order can ever
// exist.
func (s *CheckoutService) Confirm(userID uint) (*models.Order, error) {
	items, err := s.Carts.Items(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Address == "" {
		return nil, ErrNoAddress
	}

	var order models.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			affected, err := s.Products.DecrementStockGuard(tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return &StockShortfallError{ProductName: item.Name, Requested: item.Quantity, Available: -1}
			}
		}

		orderID, err := s.Orders.NextID(tx)
		if err != nil {
			return err
		}

		subtotal := sumLines(items)
		tax := utils.Round2(subtotal * TaxRate)
		now := time.Now()

		order = models.Order{
			ID:              orderID,
			UserID:          user.ID,
			UserName:        user.Name,
			// TODO: split per-farmer orders; a mixed cart currently
			// credits the first line's farmer only.
			FarmerID:        items[0].FarmerID,
			FarmerName:      items[0].FarmerName,
			Status:          models.OrderStatusPending,
			OrderDate:       now,
			DeliveryDate:    now.Add(deliveryLeadTime),
			DeliveryAddress: user.Address,
			Subtotal:        utils.Round2(subtotal),
			Tax:             tax,
			DeliveryFee:     DeliveryFee,
			Total:           utils.Round2(subtotal + tax + DeliveryFee),
		}
		for _, item := range items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Unit:      item.Unit,
				Quantity:  item.Quantity,
			})
		}

		if err := s.Orders.Create(tx, &order); err != nil {
			return err
		}
		return s.Carts.Clear(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyFarmer(&order)

	if s.Scanner != nil {
		if _, err := s.Scanner.Scan(); err != nil {
			log.Println("post-checkout low stock scan failed:", err)
		}
	}
	return &order, nil
}

func (s *CheckoutService) notifyFarmer(order *models.Order) {
	if s.Notifications == nil {
		return
	}
	n := models.Notification{
		UID:      uuid.NewString(),
		Type:     models.NotificationTypeOrder,
		Message:  utils.NewOrderNotice(order.ID, order.UserName, order.Total),
		FarmerID: order.FarmerID,
		Date:     time.Now(),
	}
	if err := s.Notifications.CreateNotification(&n); err != nil {
		log.Println("failed to record order notification:", err)
		return
	}
	if s.Publisher != nil {
		s.Publisher.Publish(n)
	}
}

func sumLines(items []models.CartItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	return subtotal
}
