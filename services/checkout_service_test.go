package services

import (
	"testing"

	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/greenvalley/farmtodoor-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmDecrementsStockAndPricesOrder(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	product := f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 5, 10)

	_, err := f.cartService().Add(customer.ID, product.ID, 3)
	require.NoError(t, err)

	order, err := f.checkoutService().Confirm(customer.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, f.stockOf(t, product.ID))

	subtotal := 3 * 4.99
	assert.InDelta(t, utils.Round2(subtotal), order.Subtotal, 0.001)
	assert.InDelta(t, utils.Round2(subtotal*TaxRate), order.Tax, 0.001)
	assert.InDelta(t, DeliveryFee, order.DeliveryFee, 0.001)
	assert.InDelta(t, utils.Round2(subtotal+utils.Round2(subtotal*TaxRate)+DeliveryFee), order.Total, 0.001)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, customer.Name, order.UserName)
	assert.Equal(t, farmer.ID, order.FarmerID)
	assert.Equal(t, "Green Valley Farm", order.FarmerName)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
}

func TestConfirmRollsBackOnShortfall(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	product := f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 5, 10)

	_, err := f.cartService().Add(customer.ID, product.ID, 3)
	require.NoError(t, err)

	// Stock shrinks after the item entered the cart.
	product.Stock = 2
	require.NoError(t, f.products.Save(product))

	_, err = f.checkoutService().Confirm(customer.ID)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing committed: stock untouched, no order, cart intact.
	assert.Equal(t, 2, f.stockOf(t, product.ID))
	var orderCount int64
	f.db.Model(&models.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
	items, err := f.carts.Items(customer.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestConfirmPartialShortfallRollsBackEarlierDecrements(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	tomatoes := f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 50, 10)
	eggs := f.createProduct(t, farmer, "Farm Fresh Eggs", 6.99, 2, 12)

	cart := f.cartService()
	_, err := cart.Add(customer.ID, tomatoes.ID, 2)
	require.NoError(t, err)
	_, err = cart.Add(customer.ID, eggs.ID, 2)
	require.NoError(t, err)

	eggs.Stock = 1
	require.NoError(t, f.products.Save(eggs))

	_, err = f.checkoutService().Confirm(customer.ID)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The tomato decrement inside the failed transaction must not stick.
	assert.Equal(t, 50, f.stockOf(t, tomatoes.ID))
	assert.Equal(t, 1, f.stockOf(t, eggs.ID))
}

func TestConfirmRejectsDeactivatedFarmerLine(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	product := f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 10, 5)

	_, err := f.cartService().Add(customer.ID, product.ID, 2)
	require.NoError(t, err)

	// The farmer is removed while the item sits in the cart.
	affected, err := f.users.SetFarmerActive(farmer.ID, false)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	checkout := f.checkoutService()
	_, err = checkout.Preview(customer.ID)
	require.ErrorIs(t, err, ErrInsufficientStock)

	_, err = checkout.Confirm(customer.ID)
	require.ErrorIs(t, err, ErrInsufficientStock)

	var orderCount int64
	f.db.Model(&models.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
	assert.Equal(t, 10, f.stockOf(t, product.ID))
}

func TestConfirmEmptyCart(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")

	_, err := f.checkoutService().Confirm(customer.ID)
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestConfirmRequiresAddress(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	product := f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 5, 10)

	_, err := f.cartService().Add(customer.ID, product.ID, 1)
	require.NoError(t, err)

	_, err = f.checkoutService().Confirm(customer.ID)
	assert.ErrorIs(t, err, ErrNoAddress)
	assert.Equal(t, 5, f.stockOf(t, product.ID))
}

func TestConfirmClearsCart(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	product := f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 10, 5)

	_, err := f.cartService().Add(customer.ID, product.ID, 2)
	require.NoError(t, err)

	_, err = f.checkoutService().Confirm(customer.ID)
	require.NoError(t, err)

	items, err := f.carts.Items(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderIDsStartAt1001AndIncrement(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	product := f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 100, 5)

	checkout := f.checkoutService()
	cart := f.cartService()

	var ids []uint
	for i := 0; i < 3; i++ {
		_, err := cart.Add(customer.ID, product.ID, 1)
		require.NoError(t, err)
		order, err := checkout.Confirm(customer.ID)
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	assert.Equal(t, []uint{1001, 1002, 1003}, ids)
	assert.Equal(t, 97, f.stockOf(t, product.ID))
}

func TestOrderIDContinuesFromSeededHistory(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	product := f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 10, 5)

	seeded := models.Order{
		ID:     1005,
		UserID: customer.ID, UserName: customer.Name,
		FarmerID: farmer.ID, FarmerName: farmer.DisplayName(),
		Status: models.OrderStatusDelivered,
	}
	require.NoError(t, f.db.Create(&seeded).Error)

	_, err := f.cartService().Add(customer.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := f.checkoutService().Confirm(customer.ID)
	require.NoError(t, err)

	assert.Equal(t, uint(1006), order.ID)
}

func TestConfirmCreditsFirstFarmerOnMixedCart(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	first := f.createFarmer(t, "sarah", "Green Valley Farm")
	second := f.createFarmer(t, "tom", "Hilltop Orchard")
	tomatoes := f.createProduct(t, first, "Organic Tomatoes", 4.99, 10, 5)
	apples := f.createProduct(t, second, "Red Apples", 5.99, 10, 5)

	cart := f.cartService()
	_, err := cart.Add(customer.ID, tomatoes.ID, 1)
	require.NoError(t, err)
	_, err = cart.Add(customer.ID, apples.ID, 1)
	require.NoError(t, err)

	order, err := f.checkoutService().Confirm(customer.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, order.FarmerID)
	assert.Equal(t, "Green Valley Farm", order.FarmerName)
	assert.Len(t, order.Items, 2)
}

func TestConfirmNotifiesFarmerAndScansStock(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	// Dropping from 6 to 3 crosses the threshold of 5.
	product := f.createProduct(t, farmer, "Fresh Lettuce", 2.99, 6, 5)

	publisher := &capturePublisher{}
	checkout := f.checkoutService()
	checkout.Publisher = publisher
	checkout.Scanner.Publisher = publisher

	_, err := f.cartService().Add(customer.ID, product.ID, 3)
	require.NoError(t, err)
	_, err = checkout.Confirm(customer.ID)
	require.NoError(t, err)

	feed, err := f.notifications.ListForFarmer(farmer.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	types := []string{feed[0].Type, feed[1].Type}
	assert.Contains(t, types, models.NotificationTypeOrder)
	assert.Contains(t, types, models.NotificationTypeLowStock)
	assert.Equal(t, 2, publisher.count())
}

func TestPreviewDoesNotMutate(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	product := f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 5, 10)

	_, err := f.cartService().Add(customer.ID, product.ID, 2)
	require.NoError(t, err)

	summary, err := f.checkoutService().Preview(customer.ID)
	require.NoError(t, err)

	subtotal := 2 * 4.99
	assert.InDelta(t, utils.Round2(subtotal), summary.Subtotal, 0.001)
	assert.InDelta(t, utils.Round2(subtotal*TaxRate), summary.Tax, 0.001)
	assert.Equal(t, "123 Main St", summary.DeliveryAddress)

	// Preview leaves stock, cart and order table alone.
	assert.Equal(t, 5, f.stockOf(t, product.ID))
	items, err := f.carts.Items(customer.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	var orderCount int64
	f.db.Model(&models.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
}

func TestPreviewReportsShortfall(t *testing.T) {
	f := newFixtures(t)
	customer := f.createCustomer(t, "123 Main St")
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	product := f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 5, 10)

	_, err := f.cartService().Add(customer.ID, product.ID, 4)
	require.NoError(t, err)

	product.Stock = 1
	require.NoError(t, f.products.Save(product))

	_, err = f.checkoutService().Preview(customer.ID)
	require.ErrorIs(t, err, ErrInsufficientStock)

	var shortfall *StockShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, "Organic Tomatoes", shortfall.ProductName)
	assert.Equal(t, 4, shortfall.Requested)
	assert.Equal(t, 1, shortfall.Available)
}
