package dairyapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Money tolerates both JSON numbers and decimal strings, which is how the
// backend serializes prices and amounts depending on the field type.
type Money float64

// UnmarshalJSON accepts 52, "52.00", "" and null; blank values decode to 0.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*m = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*m = 0
			return nil
		}
		*m = Money(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Money(f)
	return nil
}

// MarshalJSON renders Money as a plain number.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(m))
}

// AuthUser is the identity payload returned by the auth endpoints.
type AuthUser struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AdminRole string `json:"admin_role,omitempty"`
	Status    string `json:"status,omitempty"`
}

// AuthResponse wraps login/signup/me responses.
type AuthResponse struct {
	Message string    `json:"message,omitempty"`
	User    *AuthUser `json:"user"`
}

// Admin is a back-office operator record. Password is write-only.
type Admin struct {
	AdminID   int    `json:"admin_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Category is a product grouping record.
type Category struct {
	CategoryID  int    `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Plan is a subscription plan. MaxProducts bounds the delivery basket.
type Plan struct {
	SubscriptionID int      `json:"subscription_id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          Money    `json:"price"`
	BillingCycle   string   `json:"billing_cycle"`
	DurationDays   int      `json:"duration_days"`
	MaxProducts    int      `json:"max_products"`
	Features       []string `json:"features"`
	IsActive       bool     `json:"is_active"`
	CreatedAt      string   `json:"created_at,omitempty"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}

// Customer is a storefront customer record. Password is write-only.
type Customer struct {
	CustomerID int    `json:"customer_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Status     string `json:"status"`
	IsVerified bool   `json:"is_verified"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// Product is a catalog record. SubscriptionOnly routes the product into the
// recurring basket flow instead of the one-time cart.
type Product struct {
	ProductID        int      `json:"product_id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         int      `json:"category"`
	CategoryName     string   `json:"category_name,omitempty"`
	Price            Money    `json:"price"`
	Cost             Money    `json:"cost"`
	QuantityInStock  int      `json:"quantity_in_stock"`
	SKU              string   `json:"sku"`
	Status           string   `json:"status"`
	IsFeatured       bool     `json:"is_featured"`
	SubscriptionOnly bool     `json:"subscription_only"`
	Rating           float64  `json:"rating"`
	Tags             []string `json:"tags"`
	CreatedByName    string   `json:"created_by_name,omitempty"`
	CreatedAt        string   `json:"created_at,omitempty"`
	UpdatedAt        string   `json:"updated_at,omitempty"`
}

// ActiveSubscription is the snapshot embedded in the dashboard customer.
type ActiveSubscription struct {
	SubscriptionID int    `json:"subscription_id"`
	Name           string `json:"name"`
	StartDate      string `json:"subscription_start_date"`
	EndDate        string `json:"subscription_end_date"`
}

// DashboardCustomer is the trimmed profile returned by the aggregate read.
type DashboardCustomer struct {
	CustomerID          int                 `json:"customer_id"`
	Name                string              `json:"name"`
	Email               string              `json:"email"`
	Status              string              `json:"status"`
	CurrentSubscription *ActiveSubscription `json:"current_subscription"`
}

// Payment is a subscription payment transaction (read-only history).
type Payment struct {
	PaymentID            int    `json:"payment_id"`
	Subscription         int    `json:"subscription"`
	SubscriptionName     string `json:"subscription_name,omitempty"`
	Amount               Money  `json:"amount"`
	Currency             string `json:"currency"`
	Status               string `json:"status"`
	PaymentMethod        string `json:"payment_method"`
	TransactionReference string `json:"transaction_reference"`
	PaidAt               string `json:"paid_at"`
	FailureReason        string `json:"failure_reason,omitempty"`
	CreatedAt            string `json:"created_at"`
}

// BasketItem is a recurring-delivery line owned by the backend. IsActive is a
// pointer because some list shapes omit it; an absent flag means active.
type BasketItem struct {
	BasketItemID int    `json:"basket_item_id"`
	Product      int    `json:"product"`
	ProductName  string `json:"product_name,omitempty"`
	Quantity     int    `json:"quantity"`
	Frequency    string `json:"frequency"`
	IsActive     *bool  `json:"is_active,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// OrderItem is a line item on a one-time order.
type OrderItem struct {
	OrderItemID int    `json:"order_item_id"`
	Product     int    `json:"product"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Money  `json:"unit_price"`
	LineTotal   Money  `json:"line_total"`
}

// Order is a one-time cart-checkout order.
type Order struct {
	OrderID     int         `json:"order_id"`
	Subtotal    Money       `json:"subtotal"`
	TaxAmount   Money       `json:"tax_amount"`
	TotalAmount Money       `json:"total_amount"`
	Currency    string      `json:"currency"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items"`
	CreatedAt   string      `json:"created_at"`
}

// OrderPayment is the payment confirmation attached to a checkout.
type OrderPayment struct {
	OrderPaymentID       int    `json:"order_payment_id"`
	Amount               Money  `json:"amount"`
	Currency             string `json:"currency"`
	Status               string `json:"status"`
	PaymentMethod        string `json:"payment_method"`
	TransactionReference string `json:"transaction_reference"`
	PaidAt               string `json:"paid_at"`
	FailureReason        string `json:"failure_reason,omitempty"`
	CreatedAt            string `json:"created_at"`
}

// DeliveryItem is a snapshot line on a scheduled delivery day.
type DeliveryItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// Delivery is one scheduled subscription delivery.
type Delivery struct {
	DeliveryID   int            `json:"delivery_id"`
	ScheduledFor string         `json:"scheduled_for"`
	Status       string         `json:"status"`
	Items        []DeliveryItem `json:"items"`
}

// DashboardData is the single aggregate payload for the customer dashboard.
type DashboardData struct {
	Customer       DashboardCustomer `json:"customer"`
	Products       []Product         `json:"products"`
	Subscriptions  []Plan            `json:"subscriptions"`
	RecentPayments []Payment         `json:"recent_payments"`
	Basket         []BasketItem      `json:"subscription_basket"`
}

// SignupRequest covers both admin and customer signup field sets.
type SignupRequest struct {
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password"`
	AdminRole string `json:"admin_role,omitempty"`
}

// LoginRequest authenticates by email or username plus password.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// PaymentDetails carries method-specific payment fields.
type PaymentDetails struct {
	PaymentMethod string `json:"payment_method"`
	CardHolder    string `json:"card_holder,omitempty"`
	CardNumber    string `json:"card_number,omitempty"`
	Expiry        string `json:"expiry,omitempty"`
	CVV           string `json:"cvv,omitempty"`
	UPIID         string `json:"upi_id,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
}

// SubscribeRequest activates a plan for a customer.
type SubscribeRequest struct {
	CustomerID     int `json:"customer_id"`
	SubscriptionID int `json:"subscription_id"`
	PaymentDetails
}

// SubscribeResponse is the payment confirmation for a plan activation.
type SubscribeResponse struct {
	Message      string   `json:"message"`
	Payment      *Payment `json:"payment"`
	Subscription *struct {
		Name      string `json:"name"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	} `json:"subscription"`
}

// CheckoutItem is one line sent to cart checkout.
type CheckoutItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CheckoutRequest submits the eligible cart lines plus payment fields.
type CheckoutRequest struct {
	CustomerID int            `json:"customer_id"`
	Items      []CheckoutItem `json:"items"`
	PaymentDetails
}

// CheckoutResponse is the order plus payment confirmation.
type CheckoutResponse struct {
	Message string        `json:"message"`
	Order   *Order        `json:"order"`
	Payment *OrderPayment `json:"payment"`
}

// BasketUpsertRequest adds or updates a basket line, keyed by product.
type BasketUpsertRequest struct {
	CustomerID int    `json:"customer_id"`
	Product    int    `json:"product"`
	Quantity   int    `json:"quantity"`
	Frequency  string `json:"frequency"`
}

// BasketUpsertResponse returns the stored basket line.
type BasketUpsertResponse struct {
	Message string      `json:"message"`
	Item    *BasketItem `json:"item"`
}

// DeactivateResponse confirms a subscription deactivation.
type DeactivateResponse struct {
	Message              string `json:"message"`
	PreviousSubscription string `json:"previous_subscription"`
}

// DeliveriesResponse wraps the scheduled-deliveries read.
type DeliveriesResponse struct {
	Deliveries []Delivery `json:"deliveries"`
}
