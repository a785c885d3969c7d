package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/internal/session"
	"github.com/milkroute/storefront_api/internal/utils"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// SubscriptionService handles plan activation, the two-step deactivation and
// the recurring-delivery basket.
type SubscriptionService struct {
	api      *dairyapi.Client
	sessions *session.Store
}

func NewSubscriptionService(api *dairyapi.Client, sessions *session.Store) *SubscriptionService {
	return &SubscriptionService{api: api, sessions: sessions}
}

// Subscribe validates payment details, activates the plan and renders the
// receipt. Callers re-fetch the dashboard afterwards.
func (s *SubscriptionService) Subscribe(ctx context.Context, rec *session.Record, planID int, details *dairyapi.PaymentDetails) (*models.Receipt, error) {
	if err := ValidatePayment(details); err != nil {
		return nil, err
	}

	plan, err := s.api.GetPlan(ctx, rec.BackendSession, planID)
	if err != nil {
		log.Warn().Err(err).Int("plan_id", planID).Msg("Plan lookup failed before subscribe, continuing")
		plan = nil
	}

	resp, err := s.api.Subscribe(ctx, rec.BackendSession, &dairyapi.SubscribeRequest{
		CustomerID:     rec.User.ID,
		SubscriptionID: planID,
		PaymentDetails: *details,
	})
	if err != nil {
		return nil, err
	}

	receipt := BuildPlanReceipt(customerName(rec), plan, resp, details)
	log.Info().Int("customer_id", rec.User.ID).Int("plan_id", planID).Msg("Plan activated")
	return &receipt, nil
}

// RequestDeactivation is step one: it issues a short-lived confirm token
// without touching the backend.
func (s *SubscriptionService) RequestDeactivation(ctx context.Context, rec *session.Record) (string, error) {
	return s.sessions.IssueConfirmToken(ctx, rec.SID)
}

// ConfirmDeactivation is step two: the token is consumed and only then does
// the backend call run.
func (s *SubscriptionService) ConfirmDeactivation(ctx context.Context, rec *session.Record, token string) (*dairyapi.DeactivateResponse, error) {
	if err := s.sessions.ConsumeConfirmToken(ctx, rec.SID, token); err != nil {
		return nil, err
	}
	resp, err := s.api.DeactivateSubscription(ctx, rec.BackendSession, rec.User.ID)
	if err != nil {
		return nil, err
	}
	log.Info().Int("customer_id", rec.User.ID).Str("previous", resp.PreviousSubscription).Msg("Subscription deactivated")
	return resp, nil
}

// Basket lists the recurring-delivery lines.
func (s *SubscriptionService) Basket(ctx context.Context, rec *session.Record) ([]dairyapi.BasketItem, error) {
	return s.api.SubscriptionBasket(ctx, rec.BackendSession, rec.User.ID)
}

// UpsertBasketItem refuses locally when no plan is active, then writes the
// line and returns the re-fetched basket.
func (s *SubscriptionService) UpsertBasketItem(ctx context.Context, rec *session.Record, productID, quantity int, frequency string) ([]dairyapi.BasketItem, error) {
	data, err := s.api.DashboardData(ctx, rec.BackendSession, rec.User.ID)
	if err != nil {
		return nil, err
	}
	if data.Customer.CurrentSubscription == nil {
		return nil, utils.ErrNoActivePlan
	}

	if frequency == "" {
		frequency = "daily"
	}
	if _, err := s.api.UpsertBasketItem(ctx, rec.BackendSession, &dairyapi.BasketUpsertRequest{
		CustomerID: rec.User.ID,
		Product:    productID,
		Quantity:   quantity,
		Frequency:  frequency,
	}); err != nil {
		return nil, err
	}
	return s.api.SubscriptionBasket(ctx, rec.BackendSession, rec.User.ID)
}

// DeleteBasketItem removes a line and returns the re-fetched basket.
func (s *SubscriptionService) DeleteBasketItem(ctx context.Context, rec *session.Record, productID int) ([]dairyapi.BasketItem, error) {
	if err := s.api.DeleteBasketItem(ctx, rec.BackendSession, rec.User.ID, productID); err != nil {
		return nil, err
	}
	return s.api.SubscriptionBasket(ctx, rec.BackendSession, rec.User.ID)
}
