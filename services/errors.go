package services

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock available")
	ErrCartEmpty         = errors.New("your cart is empty")
	ErrNoAddress         = errors.New("please add your address in profile before checkout")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotDelivered      = errors.New("order has not been delivered yet")
	ErrAlreadyRated      = errors.New("order has already been rated")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
)

// StockShortfallError carries the per-item detail behind
// ErrInsufficientStock. Available is -1 when the live count was not
// observable (guarded update reported zero rows).
type StockShortfallError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *StockShortfallError) Error() string {
	if e.Available < 0 {
		return fmt.Sprintf("insufficient stock for %s", e.ProductName)
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

func (e *StockShortfallError) Is(target error) bool {
	return target == ErrInsufficientStock
}
