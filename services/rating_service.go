package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/greenvalley/farmtodoor-api/repository"
	"gorm.io/gorm"
)

type RatingService struct {
	DB     *gorm.DB
	Users  *repository.UserRepository
	Orders *repository.OrderRepository
}

func NewRatingService(db *gorm.DB, users *repository.UserRepository, orders *repository.OrderRepository) *RatingService {
	return &RatingService{DB: db, Users: users, Orders: orders}
}

// Submit rates the farmer behind a delivered order. The order snapshot
// and the farmer's rating list are written together, then the farmer's
// average is recomputed as the plain mean of all ratings.
func (s *RatingService) Submit(userID, orderID uint, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.Orders.FindForUser(tx, userID, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if order.Status != models.OrderStatusDelivered {
			return ErrNotDelivered
		}
		if len(order.FarmerRating) > 0 && string(order.FarmerRating) != "null" {
			return ErrAlreadyRated
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		now := time.Now()
		blob, err := json.Marshal(models.OrderRatingSnapshot{Rating: rating, Comment: comment, Date: now})
		if err != nil {
			return err
		}
		if err := s.Orders.SetFarmerRating(tx, order.ID, blob); err != nil {
			return err
		}

		if err := s.Users.AppendRating(tx, &models.FarmerRating{
			FarmerID: order.FarmerID,
			UserID:   user.ID,
			UserName: user.Name,
			OrderID:  order.ID,
			Rating:   rating,
			Comment:  comment,
			Date:     now,
		}); err != nil {
			return err
		}

		avg, count, err := s.Users.RatingAggregate(tx, order.FarmerID)
		if err != nil {
			return err
		}
		return s.Users.UpdateRatingAggregate(tx, order.FarmerID, avg, count)
	})
}
