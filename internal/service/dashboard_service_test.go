package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

func boolPtr(v bool) *bool { return &v }

func dashboardFixture() *dairyapi.DashboardData {
	return &dairyapi.DashboardData{
		Customer: dairyapi.DashboardCustomer{
			CustomerID: 12,
			Name:       "Asha Rao",
			CurrentSubscription: &dairyapi.ActiveSubscription{
				SubscriptionID: 2,
				Name:           "Family Plan",
				StartDate:      "2026-08-01",
				EndDate:        "2026-09-01",
			},
		},
		Subscriptions: []dairyapi.Plan{
			{SubscriptionID: 1, Name: "Solo Plan", MaxProducts: 3},
			{SubscriptionID: 2, Name: "Family Plan", MaxProducts: 5},
		},
		Basket: []dairyapi.BasketItem{
			{BasketItemID: 1, Product: 1, Quantity: 1},
			{BasketItemID: 2, Product: 2, Quantity: 1, IsActive: boolPtr(true)},
			{BasketItemID: 3, Product: 3, Quantity: 1, IsActive: boolPtr(false)},
		},
	}
}

func TestActivePlanMatchesCurrentSubscription(t *testing.T) {
	view := activePlan(dashboardFixture())

	require.NotNil(t, view)
	assert.Equal(t, "Family Plan", view.Plan.Name)
	assert.Equal(t, "2026-08-01", view.StartDate)
}

func TestActivePlanNilWhenNoMatch(t *testing.T) {
	data := dashboardFixture()
	data.Customer.CurrentSubscription.SubscriptionID = 99
	assert.Nil(t, activePlan(data))

	data.Customer.CurrentSubscription = nil
	assert.Nil(t, activePlan(data))
}

func TestBasketCapacityCountsOmittedIsActiveAsActive(t *testing.T) {
	gauge := basketCapacity(dashboardFixture())

	assert.Equal(t, 2, gauge.Count)
	require.NotNil(t, gauge.Limit)
	assert.Equal(t, 5, *gauge.Limit)
	assert.Equal(t, 40, gauge.FillPercent)
}

func TestBasketCapacityFillClampedAt100(t *testing.T) {
	data := dashboardFixture()
	data.Subscriptions[1].MaxProducts = 1

	gauge := basketCapacity(data)
	assert.Equal(t, 100, gauge.FillPercent)
}

func TestBasketCapacityNoLimitWithoutPositiveCap(t *testing.T) {
	data := dashboardFixture()
	data.Subscriptions[1].MaxProducts = 0

	gauge := basketCapacity(data)
	assert.Nil(t, gauge.Limit)
	assert.Equal(t, 0, gauge.FillPercent)
	assert.Equal(t, 2, gauge.Count)
}

func TestFoldSubscribedPlansMostRecentWins(t *testing.T) {
	payments := []dairyapi.Payment{
		{PaymentID: 1, Subscription: 2, SubscriptionName: "Family Plan", Amount: 499, Status: "paid", PaidAt: "2026-06-01T10:00:00Z"},
		{PaymentID: 2, Subscription: 2, SubscriptionName: "Family Plan", Amount: 549, Status: "paid", PaidAt: "2026-08-01T10:00:00Z"},
		{PaymentID: 3, Subscription: 1, SubscriptionName: "Solo Plan", Amount: 199, Status: "paid", PaidAt: "2026-07-01T10:00:00Z"},
	}
	plans := []dairyapi.Plan{{SubscriptionID: 2, Name: "Family Plan", Price: 549}}
	current := &dairyapi.ActiveSubscription{SubscriptionID: 2, Name: "Family Plan", StartDate: "2026-08-01T10:00:00Z"}

	out := foldSubscribedPlans(payments, plans, current)

	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].SubscriptionID)
	assert.Equal(t, 549.0, out[0].Amount)
	assert.Equal(t, "active", out[0].Status)
	assert.True(t, out[0].Active)
	assert.Equal(t, 1, out[1].SubscriptionID)
	assert.False(t, out[1].Active)
}

func TestFoldSubscribedPlansActivePlanAlwaysPresent(t *testing.T) {
	payments := []dairyapi.Payment{
		{PaymentID: 1, Subscription: 1, SubscriptionName: "Solo Plan", Amount: 199, Status: "paid", PaidAt: "2026-07-01T10:00:00Z"},
	}
	plans := []dairyapi.Plan{
		{SubscriptionID: 1, Name: "Solo Plan", Price: 199},
		{SubscriptionID: 2, Name: "Family Plan", Price: 499},
	}
	current := &dairyapi.ActiveSubscription{SubscriptionID: 2, Name: "Family Plan", StartDate: "2026-08-10"}

	out := foldSubscribedPlans(payments, plans, current)

	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].SubscriptionID)
	assert.Equal(t, "Family Plan", out[0].Name)
	assert.Equal(t, 499.0, out[0].Amount)
	assert.Equal(t, "active", out[0].Status)
	assert.True(t, out[0].Active)
	assert.Equal(t, "2026-08-10", out[0].PaidAt)
	assert.False(t, out[1].Active)
}

func TestFoldSubscribedPlansTieGoesToLaterPayment(t *testing.T) {
	payments := []dairyapi.Payment{
		{PaymentID: 1, Subscription: 1, Amount: 100, PaidAt: "2026-08-01T10:00:00Z"},
		{PaymentID: 2, Subscription: 1, Amount: 200, PaidAt: "2026-08-01T10:00:00Z"},
	}

	out := foldSubscribedPlans(payments, nil, nil)
	require.Len(t, out, 1)
	assert.Equal(t, 200.0, out[0].Amount)
}

func TestFoldSubscribedPlansFallsBackToCreatedAt(t *testing.T) {
	payments := []dairyapi.Payment{
		{PaymentID: 1, Subscription: 1, Amount: 100, CreatedAt: "2026-08-02T10:00:00Z"},
		{PaymentID: 2, Subscription: 1, Amount: 200, PaidAt: "2026-08-01T10:00:00Z"},
	}

	out := foldSubscribedPlans(payments, nil, nil)
	require.Len(t, out, 1)
	assert.Equal(t, 100.0, out[0].Amount)
}

func TestFoldSubscribedPlansSkipsPaymentsWithoutPlan(t *testing.T) {
	payments := []dairyapi.Payment{
		{PaymentID: 1, Subscription: 0, Amount: 100, PaidAt: "2026-08-01T10:00:00Z"},
	}

	out := foldSubscribedPlans(payments, nil, nil)
	assert.Empty(t, out)
}

func TestGroupByCategoryDefaultsAndSorts(t *testing.T) {
	products := []dairyapi.Product{
		{ProductID: 1, Name: "Toned Milk", CategoryName: "Milk"},
		{ProductID: 2, Name: "Loose Curd"},
		{ProductID: 3, Name: "Butter", CategoryName: "Dairy"},
		{ProductID: 4, Name: "A2 Milk", CategoryName: "Milk"},
		{ProductID: 5, Name: "Ghee", CategoryName: "   "},
	}

	groups := groupByCategory(products)

	require.Len(t, groups, 3)
	assert.Equal(t, "Dairy", groups[0].Category)
	assert.Equal(t, "General", groups[1].Category)
	assert.Equal(t, "Milk", groups[2].Category)

	require.Len(t, groups[1].Products, 2)
	assert.Equal(t, "Ghee", groups[1].Products[0].Name)
	assert.Equal(t, "Loose Curd", groups[1].Products[1].Name)

	require.Len(t, groups[2].Products, 2)
	assert.Equal(t, "A2 Milk", groups[2].Products[0].Name)
	assert.Equal(t, "Toned Milk", groups[2].Products[1].Name)
}

func TestParseTimestampTolerant(t *testing.T) {
	assert.False(t, parseTimestamp("2026-08-01T10:00:00Z").IsZero())
	assert.False(t, parseTimestamp("2026-08-01").IsZero())
	assert.True(t, parseTimestamp("not a date").IsZero())
}
