package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

func TestFoldNotificationsMergesAndCaps(t *testing.T) {
	payments := make([]dairyapi.Payment, 10)
	for i := range payments {
		payments[i] = dairyapi.Payment{
			PaymentID: i + 1,
			Amount:    100,
			Status:    "paid",
			PaidAt:    fmt.Sprintf("2026-08-%02dT10:00:00Z", i+1),
		}
	}
	orders := make([]dairyapi.Order, 10)
	for i := range orders {
		orders[i] = dairyapi.Order{
			OrderID:     i + 1,
			TotalAmount: 50,
			Status:      "paid",
			CreatedAt:   fmt.Sprintf("2026-08-%02dT12:00:00Z", i+1),
		}
	}

	feed := foldNotifications(payments, orders)

	// eight of each considered, twelve kept
	require.Len(t, feed, 12)
	for i := 1; i < len(feed); i++ {
		assert.False(t, parseTimestamp(feed[i].Timestamp).After(parseTimestamp(feed[i-1].Timestamp)))
	}
}

func TestFoldNotificationsIDsAreStable(t *testing.T) {
	feed := foldNotifications(
		[]dairyapi.Payment{{PaymentID: 7, PaidAt: "2026-08-01T10:00:00Z"}},
		[]dairyapi.Order{{OrderID: 9, CreatedAt: "2026-08-02T10:00:00Z"}},
	)

	require.Len(t, feed, 2)
	assert.Equal(t, "order-9", feed[0].ID)
	assert.Equal(t, "payment-7", feed[1].ID)
}

func TestFoldReordersTopEightByQuantity(t *testing.T) {
	var orders []dairyapi.Order
	for i := 0; i < 10; i++ {
		orders = append(orders, dairyapi.Order{
			Items: []dairyapi.OrderItem{
				{Product: i + 1, ProductName: fmt.Sprintf("Product %02d", i+1), Quantity: i + 1},
			},
		})
	}

	out := foldReorders(orders)

	require.Len(t, out, 8)
	assert.Equal(t, "Product 10", out[0].ProductName)
	assert.Equal(t, 10, out[0].TotalQuantity)
}

func TestFoldReordersCountsRepeatedProducts(t *testing.T) {
	orders := []dairyapi.Order{
		{Items: []dairyapi.OrderItem{{Product: 1, ProductName: "Milk", Quantity: 2}}},
		{Items: []dairyapi.OrderItem{{Product: 1, ProductName: "Milk", Quantity: 3}}},
		{Items: []dairyapi.OrderItem{{ProductName: "", Quantity: 5}}},
	}

	out := foldReorders(orders)

	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].TimesOrdered)
	assert.Equal(t, 5, out[0].TotalQuantity)
}
