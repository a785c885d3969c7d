package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/milkroute/storefront_api/internal/cache"
	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// LandingService serves the anonymous landing surface: featured products and
// the pending checkout intent captured before authentication.
type LandingService struct {
	api   *dairyapi.Client
	state *cache.StateCache
}

func NewLandingService(api *dairyapi.Client, state *cache.StateCache) *LandingService {
	return &LandingService{api: api, state: state}
}

// fallbackFeatured keeps the landing page populated when the catalog read
// fails.
var fallbackFeatured = []dairyapi.Product{
	{ProductID: -1, Name: "Fresh Whole Milk", Description: "Farm-fresh whole milk, delivered chilled", Price: 52, CategoryName: "Milk", IsFeatured: true},
	{ProductID: -2, Name: "Organic Paneer", Description: "Soft paneer made from single-origin milk", Price: 68, CategoryName: "Dairy", IsFeatured: true},
	{ProductID: -3, Name: "Natural Curd", Description: "Set curd cultured overnight", Price: 35, CategoryName: "Dairy", IsFeatured: true},
}

// Featured returns the featured catalog slice, or the static fixtures when
// the backend is unreachable.
func (s *LandingService) Featured(ctx context.Context) []dairyapi.Product {
	products, err := s.api.FeaturedProducts(ctx, "")
	if err != nil {
		log.Warn().Err(err).Msg("Featured products unavailable, serving fallback fixtures")
		return fallbackFeatured
	}
	if len(products) == 0 {
		return fallbackFeatured
	}
	return products
}

// SaveVisitorIntent persists a pending checkout intent captured before
// authentication, keyed by the anonymous visitor id. The snapshot survives
// the auth boundary and is merged into the cart on the next dashboard load.
func (s *LandingService) SaveVisitorIntent(ctx context.Context, visitorID string, items []models.IntentItem) error {
	cleaned := make([]models.IntentItem, 0, len(items))
	for _, item := range items {
		if item.Name == "" && item.ProductID == 0 {
			continue
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		cleaned = append(cleaned, item)
	}
	intent := models.PendingIntent{
		Items:     cleaned,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	return s.state.SetJSON(ctx, intentScope, visitorID, intent)
}

// AdoptIntent re-keys a visitor's pending intent onto the authenticated user.
// The visitor copy is consumed either way.
func (s *LandingService) AdoptIntent(ctx context.Context, visitorID string, userID int) {
	var intent models.PendingIntent
	found, err := s.state.TakeJSON(ctx, intentScope, visitorID, &intent)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read visitor intent")
		return
	}
	if !found || len(intent.Items) == 0 {
		return
	}
	if err := s.state.SetJSON(ctx, intentScope, fmt.Sprintf("%d", userID), intent); err != nil {
		log.Warn().Err(err).Msg("Failed to adopt visitor intent")
	}
}
