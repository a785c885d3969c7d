package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/milkroute/storefront_api/internal/cache"
	"github.com/milkroute/storefront_api/internal/cart"
	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/internal/session"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

const intentScope = "pending_intent"

// DashboardService derives the customer dashboard view model from the single
// aggregate backend read, and replays any pending checkout intent left on the
// landing surface before authentication.
type DashboardService struct {
	api   *dairyapi.Client
	carts *cart.Store
	state *cache.StateCache
}

func NewDashboardService(api *dairyapi.Client, carts *cart.Store, state *cache.StateCache) *DashboardService {
	return &DashboardService{api: api, carts: carts, state: state}
}

// View fetches the aggregate payload and derives the dashboard.
func (s *DashboardService) View(ctx context.Context, rec *session.Record) (*models.DashboardView, error) {
	data, err := s.api.DashboardData(ctx, rec.BackendSession, rec.User.ID)
	if err != nil {
		return nil, err
	}

	replayed := s.replayIntent(ctx, rec, data.Products)

	view := &models.DashboardView{
		Customer:           data.Customer,
		ActivePlan:         activePlan(data),
		Plans:              data.Subscriptions,
		Basket:             data.Basket,
		BasketCapacity:     basketCapacity(data),
		SubscribedPlans:    foldSubscribedPlans(data.RecentPayments, data.Subscriptions, data.Customer.CurrentSubscription),
		ProductsByCategory: groupByCategory(data.Products),
		RecentPayments:     data.RecentPayments,
		ReferralCode:       fmt.Sprintf("MM-%04d", data.Customer.CustomerID),
		Cart:               s.carts.Lines(rec.SID),
		IntentReplayed:     replayed,
	}
	cart.SortLines(view.Cart)
	return view, nil
}

// replayIntent consumes the pending intent blob, if any, and merges it into
// the cart. The blob is gone after this read whether or not every item
// resolved.
func (s *DashboardService) replayIntent(ctx context.Context, rec *session.Record, products []dairyapi.Product) bool {
	var intent models.PendingIntent
	owner := fmt.Sprintf("%d", rec.User.ID)
	found, err := s.state.TakeJSON(ctx, intentScope, owner, &intent)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read pending checkout intent")
		return false
	}
	if !found || len(intent.Items) == 0 {
		return false
	}

	catalog := make([]cart.CatalogEntry, len(products))
	for i, p := range products {
		catalog[i] = cart.CatalogEntry{
			ID:                   p.ProductID,
			Name:                 p.Name,
			Price:                float64(p.Price),
			RequiresSubscription: p.SubscriptionOnly,
		}
	}
	s.carts.MergeIntent(rec.SID, intent, catalog)
	log.Info().Int("items", len(intent.Items)).Msg("Pending checkout intent replayed")
	return true
}

func activePlan(data *dairyapi.DashboardData) *models.ActivePlanView {
	current := data.Customer.CurrentSubscription
	if current == nil {
		return nil
	}
	for _, plan := range data.Subscriptions {
		if plan.SubscriptionID == current.SubscriptionID {
			return &models.ActivePlanView{
				Plan:      plan,
				StartDate: current.StartDate,
				EndDate:   current.EndDate,
			}
		}
	}
	return nil
}

func basketCapacity(data *dairyapi.DashboardData) models.BasketCapacity {
	count := 0
	for _, item := range data.Basket {
		if item.IsActive == nil || *item.IsActive {
			count++
		}
	}

	gauge := models.BasketCapacity{Count: count}
	active := activePlan(data)
	if active == nil || active.Plan.MaxProducts <= 0 {
		return gauge
	}
	limit := active.Plan.MaxProducts
	gauge.Limit = &limit
	fill := count * 100 / limit
	if fill > 100 {
		fill = 100
	}
	gauge.FillPercent = fill
	return gauge
}

// foldSubscribedPlans reduces the payment history to one row per plan, the
// most recent payment winning. A tie on timestamp goes to the later payment
// in the list. The active plan always gets a row, payment history or not: its
// name comes from the subscription snapshot, its amount from the catalog
// plan's price, and its activity time from the subscription start date.
func foldSubscribedPlans(payments []dairyapi.Payment, plans []dairyapi.Plan, current *dairyapi.ActiveSubscription) []models.SubscribedPlan {
	type entry struct {
		plan models.SubscribedPlan
		at   time.Time
	}
	priceByPlan := make(map[int]float64, len(plans))
	for _, pl := range plans {
		priceByPlan[pl.SubscriptionID] = float64(pl.Price)
	}

	byPlan := make(map[int]entry)
	order := make([]int, 0)

	for _, p := range payments {
		if p.Subscription == 0 {
			continue
		}
		at := parseTimestamp(firstNonEmpty(p.PaidAt, p.CreatedAt))
		existing, seen := byPlan[p.Subscription]
		if seen && at.Before(existing.at) {
			continue
		}
		if !seen {
			order = append(order, p.Subscription)
		}
		name := p.SubscriptionName
		if name == "" {
			name = fmt.Sprintf("Plan #%d", p.Subscription)
		}
		byPlan[p.Subscription] = entry{
			plan: models.SubscribedPlan{
				SubscriptionID: p.Subscription,
				Name:           name,
				Amount:         float64(p.Amount),
				Status:         p.Status,
				PaidAt:         firstNonEmpty(p.PaidAt, p.CreatedAt),
			},
			at: at,
		}
	}

	if current != nil {
		if _, seen := byPlan[current.SubscriptionID]; !seen {
			order = append(order, current.SubscriptionID)
		}
		byPlan[current.SubscriptionID] = entry{
			plan: models.SubscribedPlan{
				SubscriptionID: current.SubscriptionID,
				Name:           current.Name,
				Amount:         priceByPlan[current.SubscriptionID],
				Status:         "active",
				PaidAt:         current.StartDate,
				Active:         true,
			},
			at: parseTimestamp(current.StartDate),
		}
	}

	out := make([]models.SubscribedPlan, 0, len(order))
	for _, id := range order {
		out = append(out, byPlan[id].plan)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return parseTimestamp(out[i].PaidAt).After(parseTimestamp(out[j].PaidAt))
	})
	return out
}

// groupByCategory buckets products by category name, "General" when blank or
// whitespace, groups and in-group products ordered alphabetically.
func groupByCategory(products []dairyapi.Product) []models.ProductGroup {
	buckets := make(map[string][]dairyapi.Product)
	for _, p := range products {
		name := strings.TrimSpace(p.CategoryName)
		if name == "" {
			name = "General"
		}
		buckets[name] = append(buckets[name], p)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]models.ProductGroup, len(names))
	for i, name := range names {
		group := buckets[name]
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].Name < group[b].Name
		})
		groups[i] = models.ProductGroup{Category: name, Products: group}
	}
	return groups
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp tolerates the backend's date formats; unparseable values
// sort as the zero time.
func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
