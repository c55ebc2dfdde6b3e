package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/repository"
	"github.com/greenvalley/farmtodoor-api/services"
	"gorm.io/gorm"
)

var (
	db *gorm.DB

	users         *repository.UserRepository
	products      *repository.ProductRepository
	carts         *repository.CartRepository
	orders        *repository.OrderRepository
	notifications *repository.NotificationRepository

	cartService     *services.CartService
	checkoutService *services.CheckoutService
	ratingService   *services.RatingService
	lowStockService *services.LowStockService
	notifier        *services.Notifier
)

// Init wires repositories and services against the live database.
// Notifier and publisher may be nil (tests run without them).
func Init(database *gorm.DB, n *services.Notifier, publisher services.NotificationPublisher) {
	db = database

	users = repository.NewUserRepository(db)
	products = repository.NewProductRepository(db)
	carts = repository.NewCartRepository(db)
	orders = repository.NewOrderRepository(db)
	notifications = repository.NewNotificationRepository(db)

	lowStockService = services.NewLowStockService(products, notifications)
	lowStockService.Publisher = publisher

	cartService = services.NewCartService(db, carts, products)
	checkoutService = &services.CheckoutService{
		DB:            db,
		Users:         users,
		Products:      products,
		Carts:         carts,
		Orders:        orders,
		Notifications: notifications,
		Scanner:       lowStockService,
		Publisher:     publisher,
	}
	ratingService = services.NewRatingService(db, users, orders)
	notifier = n
}

// LowStock exposes the scanner so main can hand it to the monitor.
func LowStock() *services.LowStockService {
	return lowStockService
}

func getUserID(ctx *gin.Context) uint {
	if v, ok := ctx.Get("userId"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func mapServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		sendErrorResponse(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrNoAddress),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrNotDelivered),
		errors.Is(err, services.ErrAlreadyRated):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		log.Println("unexpected service error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}
