package services

import (
	"context"
	"testing"
	"time"

	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanAlertsAtOrBelowThreshold(t *testing.T) {
	f := newFixtures(t)
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 50, 10)
	atThreshold := f.createProduct(t, farmer, "Fresh Lettuce", 2.99, 5, 5)
	below := f.createProduct(t, farmer, "Fresh Spinach", 3.99, 2, 8)

	svc := NewLowStockService(f.products, f.notifications)
	created, err := svc.Scan()
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	alerts, err := f.notifications.AlertsForFarmer(farmer.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	ids := []uint{alerts[0].ProductID, alerts[1].ProductID}
	assert.Contains(t, ids, atThreshold.ID)
	assert.Contains(t, ids, below.ID)
}

func TestScanAlertsOnlyOnce(t *testing.T) {
	f := newFixtures(t)
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	product := f.createProduct(t, farmer, "Fresh Spinach", 3.99, 2, 8)

	svc := NewLowStockService(f.products, f.notifications)

	created, err := svc.Scan()
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// Repeated scans stay quiet.
	created, err = svc.Scan()
	require.NoError(t, err)
	assert.Zero(t, created)

	// Restocking and dropping again does not re-fire either.
	product.Stock = 50
	require.NoError(t, f.products.Save(product))
	product.Stock = 1
	require.NoError(t, f.products.Save(product))

	created, err = svc.Scan()
	require.NoError(t, err)
	assert.Zero(t, created)

	alerts, err := f.notifications.AlertsForFarmer(farmer.ID)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestScanWritesNotificationAndPublishes(t *testing.T) {
	f := newFixtures(t)
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	f.createProduct(t, farmer, "Fresh Spinach", 3.99, 2, 8)

	publisher := &capturePublisher{}
	svc := NewLowStockService(f.products, f.notifications)
	svc.Publisher = publisher

	_, err := svc.Scan()
	require.NoError(t, err)

	feed, err := f.notifications.ListForFarmer(farmer.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotificationTypeLowStock, feed[0].Type)
	assert.Contains(t, feed[0].Message, "Fresh Spinach")
	assert.Contains(t, feed[0].Message, "only 2 units remaining")
	assert.Equal(t, 1, publisher.count())
}

func TestSweepExpiredDropsOldListings(t *testing.T) {
	f := newFixtures(t)
	farmer := f.createFarmer(t, "sarah", "Green Valley Farm")
	fresh := f.createProduct(t, farmer, "Organic Tomatoes", 4.99, 50, 10)
	stale := f.createProduct(t, farmer, "Fresh Lettuce", 2.99, 30, 5)

	stale.AddedDate = time.Now().Add(-ListingTTL - time.Hour)
	require.NoError(t, f.products.Save(stale))

	svc := NewLowStockService(f.products, f.notifications)
	removed, err := svc.SweepExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := f.products.ListByFarmer(farmer.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, fresh.ID, remaining[0].ID)
}

func TestStockMonitorHonorsContext(t *testing.T) {
	f := newFixtures(t)
	svc := NewLowStockService(f.products, f.notifications)
	monitor := NewStockMonitor(svc, 10*time.Millisecond)

	done := make(chan struct{})
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	go func() {
		monitor.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop after context cancellation")
	}
}
