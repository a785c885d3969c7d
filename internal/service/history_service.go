package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/internal/session"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// HistoryService serves the read-only history pages and the folds derived
// from them.
type HistoryService struct {
	api *dairyapi.Client
}

func NewHistoryService(api *dairyapi.Client) *HistoryService {
	return &HistoryService{api: api}
}

func (s *HistoryService) Payments(ctx context.Context, rec *session.Record) ([]dairyapi.Payment, error) {
	return s.api.Payments(ctx, rec.BackendSession, rec.User.ID)
}

func (s *HistoryService) Orders(ctx context.Context, rec *session.Record) ([]dairyapi.Order, error) {
	return s.api.Orders(ctx, rec.BackendSession, rec.User.ID)
}

func (s *HistoryService) Deliveries(ctx context.Context, rec *session.Record, days int) ([]dairyapi.Delivery, error) {
	return s.api.SubscriptionDeliveries(ctx, rec.BackendSession, rec.User.ID, days)
}

// Notifications folds the most recent payments and orders into one feed:
// up to eight of each, merged most recent first, twelve kept.
func (s *HistoryService) Notifications(ctx context.Context, rec *session.Record) ([]models.Notification, error) {
	payments, err := s.Payments(ctx, rec)
	if err != nil {
		return nil, err
	}
	orders, err := s.Orders(ctx, rec)
	if err != nil {
		return nil, err
	}
	return foldNotifications(payments, orders), nil
}

func foldNotifications(payments []dairyapi.Payment, orders []dairyapi.Order) []models.Notification {
	feed := make([]models.Notification, 0, 16)

	if len(payments) > 8 {
		payments = payments[:8]
	}
	for _, p := range payments {
		feed = append(feed, models.Notification{
			ID:        fmt.Sprintf("payment-%d", p.PaymentID),
			Kind:      "payment",
			Title:     "Subscription payment",
			Detail:    p.SubscriptionName,
			Amount:    float64(p.Amount),
			Status:    p.Status,
			Timestamp: firstNonEmpty(p.PaidAt, p.CreatedAt),
		})
	}

	if len(orders) > 8 {
		orders = orders[:8]
	}
	for _, o := range orders {
		feed = append(feed, models.Notification{
			ID:        fmt.Sprintf("order-%d", o.OrderID),
			Kind:      "order",
			Title:     "Order placed",
			Detail:    fmt.Sprintf("%d items", len(o.Items)),
			Amount:    float64(o.TotalAmount),
			Status:    o.Status,
			Timestamp: o.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return parseTimestamp(feed[i].Timestamp).After(parseTimestamp(feed[j].Timestamp))
	})
	if len(feed) > 12 {
		feed = feed[:12]
	}
	return feed
}

// ReorderSuggestions folds order history by product name and returns the
// eight most ordered products.
func (s *HistoryService) ReorderSuggestions(ctx context.Context, rec *session.Record) ([]models.ReorderSuggestion, error) {
	orders, err := s.Orders(ctx, rec)
	if err != nil {
		return nil, err
	}
	return foldReorders(orders), nil
}

func foldReorders(orders []dairyapi.Order) []models.ReorderSuggestion {
	byName := make(map[string]*models.ReorderSuggestion)
	names := make([]string, 0)
	for _, o := range orders {
		for _, item := range o.Items {
			if item.ProductName == "" {
				continue
			}
			sug, ok := byName[item.ProductName]
			if !ok {
				sug = &models.ReorderSuggestion{ProductName: item.ProductName, ProductID: item.Product}
				byName[item.ProductName] = sug
				names = append(names, item.ProductName)
			}
			sug.TimesOrdered++
			sug.TotalQuantity += item.Quantity
		}
	}

	out := make([]models.ReorderSuggestion, 0, len(names))
	for _, name := range names {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].ProductName < out[j].ProductName
	})
	if len(out) > 8 {
		out = out[:8]
	}
	return out
}
