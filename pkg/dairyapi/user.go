package dairyapi

import (
	"context"
	"net/http"
	"net/url"
)

func customerParams(customerID int) url.Values {
	q := url.Values{}
	q.Set("customer_id", itoa(customerID))
	return q
}

// DashboardData fetches the single aggregate payload for a customer.
func (c *Client) DashboardData(ctx context.Context, session string, customerID int) (*DashboardData, error) {
	var out DashboardData
	if _, err := c.do(ctx, http.MethodGet, "/user/dashboard-data/", customerParams(customerID), session, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Subscribe activates a plan, charging through the supplied payment fields.
func (c *Client) Subscribe(ctx context.Context, session string, req *SubscribeRequest) (*SubscribeResponse, error) {
	var out SubscribeResponse
	if _, err := c.do(ctx, http.MethodPost, "/user/subscribe/", nil, session, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeactivateSubscription ends the customer's current plan.
func (c *Client) DeactivateSubscription(ctx context.Context, session string, customerID int) (*DeactivateResponse, error) {
	var out DeactivateResponse
	body := map[string]int{"customer_id": customerID}
	if _, err := c.do(ctx, http.MethodPost, "/user/deactivate-subscription/", nil, session, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CartCheckout submits one-time cart lines for payment.
func (c *Client) CartCheckout(ctx context.Context, session string, req *CheckoutRequest) (*CheckoutResponse, error) {
	var out CheckoutResponse
	if _, err := c.do(ctx, http.MethodPost, "/user/cart-checkout/", nil, session, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Payments lists the customer's subscription payment history.
func (c *Client) Payments(ctx context.Context, session string, customerID int) ([]Payment, error) {
	return doCollection[Payment](ctx, c, "/user/payments/", customerParams(customerID), session)
}

// Orders lists the customer's one-time orders.
func (c *Client) Orders(ctx context.Context, session string, customerID int) ([]Order, error) {
	return doCollection[Order](ctx, c, "/user/orders/", customerParams(customerID), session)
}

// SubscriptionDeliveries lists scheduled deliveries for the next days window.
func (c *Client) SubscriptionDeliveries(ctx context.Context, session string, customerID, days int) ([]Delivery, error) {
	q := customerParams(customerID)
	if days > 0 {
		q.Set("days", itoa(days))
	}
	var out DeliveriesResponse
	if _, err := c.do(ctx, http.MethodGet, "/user/subscription-deliveries/", q, session, nil, &out); err != nil {
		return nil, err
	}
	return out.Deliveries, nil
}

// SubscriptionBasket lists the customer's recurring-delivery lines.
func (c *Client) SubscriptionBasket(ctx context.Context, session string, customerID int) ([]BasketItem, error) {
	return doCollection[BasketItem](ctx, c, "/user/subscription-basket/", customerParams(customerID), session)
}

// UpsertBasketItem adds or updates a basket line, keyed by product.
func (c *Client) UpsertBasketItem(ctx context.Context, session string, req *BasketUpsertRequest) (*BasketItem, error) {
	var out BasketUpsertResponse
	if _, err := c.do(ctx, http.MethodPost, "/user/subscription-basket/", nil, session, req, &out); err != nil {
		return nil, err
	}
	return out.Item, nil
}

// DeleteBasketItem removes a basket line by product id.
func (c *Client) DeleteBasketItem(ctx context.Context, session string, customerID, productID int) error {
	q := customerParams(customerID)
	q.Set("product_id", itoa(productID))
	_, err := c.do(ctx, http.MethodDelete, "/user/subscription-basket/", q, session, nil, nil)
	return err
}
