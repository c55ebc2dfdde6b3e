package services

import (
	"testing"

	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixtures) createOrder(t *testing.T, customer, farmer *models.User, id uint, status string) *models.Order {
	t.Helper()
	order := models.Order{
		ID:     id,
		UserID: customer.ID, UserName: customer.Name,
		FarmerID: farmer.ID, FarmerName: farmer.DisplayName(),
		Status: status,
	}
	require.NoError(t, f.db.Create(&order).Error)
	return &order
}

func TestSubmitRatingUpdatesFarmerAverage(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	order := f.createOrder(t, customer, farmer, 1001, models.OrderStatusDelivered)

	svc := NewRatingService(f.db, f.users, f.orders)
	require.NoError(t, svc.Submit(customer.ID, order.ID, 4, "Great produce"))

	updated, err := f.users.FindByID(farmer.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, updated.Rating, 0.001)
	assert.Equal(t, 1, updated.TotalRatings)

	rated, err := f.orders.FindByID(order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, rated.FarmerRating)
}

func TestSubmitRatingComputesMeanAcrossOrders(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	first := f.createOrder(t, customer, farmer, 1001, models.OrderStatusDelivered)
	second := f.createOrder(t, customer, farmer, 1002, models.OrderStatusDelivered)
	third := f.createOrder(t, customer, farmer, 1003, models.OrderStatusDelivered)

	svc := NewRatingService(f.db, f.users, f.orders)
	require.NoError(t, svc.Submit(customer.ID, first.ID, 5, ""))
	require.NoError(t, svc.Submit(customer.ID, second.ID, 3, ""))
	require.NoError(t, svc.Submit(customer.ID, third.ID, 4, ""))

	updated, err := f.users.FindByID(farmer.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, updated.Rating, 0.001)
	assert.Equal(t, 3, updated.TotalRatings)
}

func TestSubmitRatingRejectsDoubleRating(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	order := f.createOrder(t, customer, farmer, 1001, models.OrderStatusDelivered)

	svc := NewRatingService(f.db, f.users, f.orders)
	require.NoError(t, svc.Submit(customer.ID, order.ID, 5, ""))
	err := svc.Submit(customer.ID, order.ID, 1, "changed my mind")
	require.ErrorIs(t, err, ErrAlreadyRated)

	updated, err := f.users.FindByID(farmer.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, updated.Rating, 0.001)
	assert.Equal(t, 1, updated.TotalRatings)
}

func TestSubmitRatingRequiresDeliveredOrder(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	order := f.createOrder(t, customer, farmer, 1001, models.OrderStatusProcessing)

	err := NewRatingService(f.db, f.users, f.orders).Submit(customer.ID, order.ID, 4, "")
	assert.ErrorIs(t, err, ErrNotDelivered)
}

func TestSubmitRatingValidatesRange(t *testing.T) {
	f := newFixtures(t)
	svc := NewRatingService(f.db, f.users, f.orders)

	assert.ErrorIs(t, svc.Submit(1, 1001, 0, ""), ErrInvalidRating)
	assert.ErrorIs(t, svc.Submit(1, 1001, 6, ""), ErrInvalidRating)
}

func TestSubmitRatingScopedToOwnOrders(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	stranger := models.User{Name: "Stranger", Email: "stranger@example.com", Role: models.RoleUser}
	require.NoError(t, f.db.Create(&stranger).Error)
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	order := f.createOrder(t, customer, farmer, 1001, models.OrderStatusDelivered)

	err := NewRatingService(f.db, f.users, f.orders).Submit(stranger.ID, order.ID, 5, "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
