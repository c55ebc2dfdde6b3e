package services

import (
	"errors"

	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/greenvalley/farmtodoor-api/repository"
	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	Carts    *repository.CartRepository
	Products *repository.ProductRepository
}

func NewCartService(db *gorm.DB, carts *repository.CartRepository, products *repository.ProductRepository) *CartService {
	return &CartService{DB: db, Carts: carts, Products: products}
}

// Add inserts a new line or increments an existing one. The cumulative
// quantity is validated against live stock before anything is written.
func (s *CartService) Add(userID, productID uint, qty int) (*models.CartItem, error) {
	if qty <= 0 {
		qty = 1
	}

	product, err := s.Products.FindAvailable(productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	line, err := s.Carts.Item(userID, productID)
	if err != nil {
		return nil, err
	}

	requested := qty
	if line != nil {
		requested += line.Quantity
	}
	if product.Stock < requested {
		return nil, &StockShortfallError{ProductName: product.Name, Requested: requested, Available: product.Stock}
	}

	if line != nil {
		line.Quantity = requested
	} else {
		line = &models.CartItem{
			UserID:     userID,
			ProductID:  product.ID,
			Name:       product.Name,
			Price:      product.Price,
			Unit:       product.Unit,
			Quantity:   qty,
			FarmerID:   product.FarmerID,
			FarmerName: product.FarmerName,
		}
	}

	if err := s.Carts.Save(line); err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateQuantity sets a line to an absolute quantity. Zero or below
// removes the line; otherwise the new quantity is re-validated against
// live stock.
func (s *CartService) UpdateQuantity(userID, productID uint, qty int) error {
	if qty <= 0 {
		return s.Carts.Remove(userID, productID)
	}

	line, err := s.Carts.Item(userID, productID)
	if err != nil {
		return err
	}
	if line == nil {
		return ErrProductNotFound
	}

	product, err := s.Products.FindAvailable(productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	if product.Stock < qty {
		return &StockShortfallError{ProductName: product.Name, Requested: qty, Available: product.Stock}
	}

	line.Quantity = qty
	return s.Carts.Save(line)
}

func (s *CartService) Remove(userID, productID uint) error {
	return s.Carts.Remove(userID, productID)
}

func (s *CartService) Clear(userID uint) error {
	return s.Carts.Clear(s.DB, userID)
}

// Get returns the cart after pruning lines whose product has been
// removed, belongs to a deactivated farmer, or no longer covers the
// requested quantity. Pruning is silent; the customer just sees the
// line gone.
func (s *CartService) Get(userID uint) ([]models.CartItem, float64, error) {
	items, err := s.Carts.Items(userID)
	if err != nil {
		return nil, 0, err
	}

	kept := make([]models.CartItem, 0, len(items))
	var total float64
	for _, item := range items {
		product, err := s.Products.FindAvailable(item.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && product.Stock < item.Quantity) {
			if removeErr := s.Carts.Remove(userID, item.ProductID); removeErr != nil {
				return nil, 0, removeErr
			}
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		kept = append(kept, item)
		total += item.LineTotal()
	}
	return kept, total, nil
}

// Total sums price x quantity over the lines. Tax and delivery fee are
// added only at checkout.
func (s *CartService) Total(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
