package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/milkroute/storefront_api/internal/cart"
	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/internal/session"
	"github.com/milkroute/storefront_api/internal/utils"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// CheckoutService owns the one-time cart and its checkout state machine.
// The backend prices and persists the order; this side guards what may be
// submitted and renders the receipt.
type CheckoutService struct {
	api   *dairyapi.Client
	carts *cart.Store
}

func NewCheckoutService(api *dairyapi.Client, carts *cart.Store) *CheckoutService {
	return &CheckoutService{api: api, carts: carts}
}

// Lines returns the session's cart in display order.
func (s *CheckoutService) Lines(sid string) []models.CartLine {
	lines := s.carts.Lines(sid)
	cart.SortLines(lines)
	return lines
}

// Add resolves a product and merges it into the cart. Subscription-only
// products are accepted into the cart but flagged; checkout refuses them.
func (s *CheckoutService) Add(ctx context.Context, rec *session.Record, productID, quantity int) ([]models.CartLine, error) {
	if quantity == 0 {
		quantity = 1
	}
	product, err := s.api.GetProduct(ctx, rec.BackendSession, productID)
	if err != nil {
		return nil, err
	}
	lines := s.carts.Add(rec.SID, models.CartLine{
		LineKey:              strconv.Itoa(product.ProductID),
		ProductID:            product.ProductID,
		Name:                 product.Name,
		Price:                float64(product.Price),
		Quantity:             quantity,
		RequiresSubscription: product.SubscriptionOnly,
	})
	cart.SortLines(lines)
	return lines, nil
}

// SetQuantity pins a line quantity; zero or below removes the line.
func (s *CheckoutService) SetQuantity(sid, lineKey string, quantity int) []models.CartLine {
	lines := s.carts.SetQuantity(sid, lineKey, quantity)
	cart.SortLines(lines)
	return lines
}

// Remove drops a line.
func (s *CheckoutService) Remove(sid, lineKey string) []models.CartLine {
	lines := s.carts.Remove(sid, lineKey)
	cart.SortLines(lines)
	return lines
}

// Clear empties the cart.
func (s *CheckoutService) Clear(sid string) {
	s.carts.Clear(sid)
}

// Checkout submits the cart. Guards run in order: an empty cart, unavailable
// intent remnants and subscription-only lines all refuse before any payment
// detail is validated or the backend is called. On success the cart is
// cleared and the receipt returned.
func (s *CheckoutService) Checkout(ctx context.Context, rec *session.Record, details *dairyapi.PaymentDetails) (*models.Receipt, error) {
	lines := s.carts.Lines(rec.SID)
	if len(lines) == 0 {
		return nil, utils.ErrEmptyCart
	}
	for _, line := range lines {
		if line.Unavailable {
			return nil, utils.ErrUnavailableItems
		}
	}
	for _, line := range lines {
		if line.RequiresSubscription {
			return nil, utils.ErrSubscriptionOnly
		}
	}
	if err := ValidatePayment(details); err != nil {
		return nil, err
	}

	req := &dairyapi.CheckoutRequest{
		CustomerID:     rec.User.ID,
		PaymentDetails: *details,
	}
	for _, line := range lines {
		req.Items = append(req.Items, dairyapi.CheckoutItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	resp, err := s.api.CartCheckout(ctx, rec.BackendSession, req)
	if err != nil {
		// The backend may still reject lines as subscription-only, with the
		// offending products attached.
		if apiErr, ok := dairyapi.AsAPIError(err); ok && apiErr.IsSubscriptionOnlyRejection() {
			log.Info().Int("items", len(apiErr.SubscriptionOnlyItems)).Msg("Checkout rejected for subscription-only items")
		}
		return nil, err
	}

	receipt := BuildOrderReceipt(customerName(rec), lines, resp, details)
	s.carts.Clear(rec.SID)
	log.Info().Int("customer_id", rec.User.ID).Str("receipt_no", receipt.ReceiptNo).Msg("Checkout completed")
	return &receipt, nil
}

func customerName(rec *session.Record) string {
	name := rec.User.FirstName
	if rec.User.LastName != "" {
		if name != "" {
			name += " "
		}
		name += rec.User.LastName
	}
	if name == "" {
		name = rec.User.Email
	}
	return name
}
