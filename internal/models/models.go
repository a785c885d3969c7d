package models

import "github.com/milkroute/storefront_api/pkg/dairyapi"

// Roles recognized by the session layer.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SessionUser is the identity payload held in the server-side session record.
type SessionUser struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AdminRole string `json:"admin_role,omitempty"`
}

// CartLine is one line of the ephemeral one-time cart. LineKey is the product
// id as a string for resolved lines, or a synthetic "missing-" key for intent
// items that no longer match any catalog product.
type CartLine struct {
	LineKey              string  `json:"line_key"`
	ProductID            int     `json:"product_id,omitempty"`
	Name                 string  `json:"name"`
	Price                float64 `json:"price"`
	Quantity             int     `json:"quantity"`
	Unavailable          bool    `json:"unavailable,omitempty"`
	RequiresSubscription bool    `json:"requires_subscription,omitempty"`
}

// IntentItem is one requested line of a pending checkout intent captured on
// the landing surface before authentication.
type IntentItem struct {
	ProductID int    `json:"product_id,omitempty"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// PendingIntent is the snapshot persisted across the auth boundary and
// replayed into the cart on the next dashboard load.
type PendingIntent struct {
	Items     []IntentItem `json:"items"`
	CreatedAt string       `json:"created_at,omitempty"`
}

// ReceiptLine is one priced line on a rendered receipt.
type ReceiptLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Receipt is the normalized confirmation shown after a successful payment,
// for both plan activations and cart checkouts.
type Receipt struct {
	Type                 string        `json:"type"`
	Title                string        `json:"title"`
	Subtitle             string        `json:"subtitle,omitempty"`
	CustomerName         string        `json:"customer_name"`
	ReceiptNo            string        `json:"receipt_no"`
	TransactionReference string        `json:"transaction_reference"`
	PaidAt               string        `json:"paid_at"`
	PaymentMethod        string        `json:"payment_method"`
	PaymentDetail        string        `json:"payment_detail,omitempty"`
	Items                []ReceiptLine `json:"items,omitempty"`
	Subtotal             float64       `json:"subtotal"`
	Tax                  float64       `json:"tax"`
	Total                float64       `json:"total"`
}

// ActivePlanView is the customer's current plan resolved against the catalog.
type ActivePlanView struct {
	Plan      dairyapi.Plan `json:"plan"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
}

// BasketCapacity is the basket fill gauge. Limit is nil when the plan
// declares no positive product cap.
type BasketCapacity struct {
	Count       int  `json:"count"`
	Limit       *int `json:"limit"`
	FillPercent int  `json:"fill_percent"`
}

// SubscribedPlan is one row of the plan history fold: the most recent payment
// per plan, with the active plan overlaid.
type SubscribedPlan struct {
	SubscriptionID int     `json:"subscription_id"`
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	PaidAt         string  `json:"paid_at"`
	Active         bool    `json:"active"`
}

// ProductGroup is the catalog grouped by category name.
type ProductGroup struct {
	Category string             `json:"category"`
	Products []dairyapi.Product `json:"products"`
}

// DashboardView is the derived customer dashboard payload.
type DashboardView struct {
	Customer           dairyapi.DashboardCustomer `json:"customer"`
	ActivePlan         *ActivePlanView            `json:"active_plan"`
	Plans              []dairyapi.Plan            `json:"plans"`
	Basket             []dairyapi.BasketItem      `json:"basket"`
	BasketCapacity     BasketCapacity             `json:"basket_capacity"`
	SubscribedPlans    []SubscribedPlan           `json:"subscribed_plans"`
	ProductsByCategory []ProductGroup             `json:"products_by_category"`
	RecentPayments     []dairyapi.Payment         `json:"recent_payments"`
	ReferralCode       string                     `json:"referral_code"`
	Cart               []CartLine                 `json:"cart"`
	IntentReplayed     bool                       `json:"intent_replayed,omitempty"`
}

// Notification is one merged entry of the payments + orders feed.
type Notification struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Title     string  `json:"title"`
	Detail    string  `json:"detail"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
}

// ReorderSuggestion is one row of the order-history reorder fold.
type ReorderSuggestion struct {
	ProductName   string `json:"product_name"`
	ProductID     int    `json:"product_id,omitempty"`
	TimesOrdered  int    `json:"times_ordered"`
	TotalQuantity int    `json:"total_quantity"`
}

// SupportTicket is a locally stored support request.
type SupportTicket struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// UserPrefs are per-user display preferences.
type UserPrefs struct {
	Theme              string `json:"theme,omitempty"`
	DeliveryNotes      string `json:"delivery_notes,omitempty"`
	EmailNotifications bool   `json:"email_notifications"`
}
