package service

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// Receipt builders. Backend-provided values always win; locally derived
// fallbacks fill the gaps so a sparse payment response still renders a
// complete receipt.

func fallbackRef(prefix string) string {
	return prefix + uuid.New().String()[:8]
}

// BuildOrderReceipt renders the confirmation for a cart checkout. Subtotal
// falls back to the sum of the checked-out lines and tax to zero when the
// backend omits them; total then equals the subtotal plus tax.
func BuildOrderReceipt(customerName string, lines []models.CartLine, resp *dairyapi.CheckoutResponse, details *dairyapi.PaymentDetails) models.Receipt {
	r := models.Receipt{
		Type:          "order",
		Title:         "Order confirmed",
		CustomerName:  customerName,
		PaymentMethod: details.PaymentMethod,
		PaymentDetail: PaymentDetailSummary(details),
		PaidAt:        time.Now().Format(time.RFC3339),
	}

	for _, line := range lines {
		r.Items = append(r.Items, models.ReceiptLine{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Price,
			LineTotal: line.Price * float64(line.Quantity),
		})
		r.Subtotal += line.Price * float64(line.Quantity)
	}

	if resp != nil && resp.Order != nil {
		order := resp.Order
		r.Subtitle = "Order MM-ORD-" + itoa(order.OrderID)
		r.ReceiptNo = "MM-INV-" + itoa(order.OrderID)
		if order.Subtotal > 0 {
			r.Subtotal = float64(order.Subtotal)
		}
		r.Tax = float64(order.TaxAmount)
		if order.TotalAmount > 0 {
			r.Total = float64(order.TotalAmount)
		}
		if order.CreatedAt != "" {
			r.PaidAt = order.CreatedAt
		}
	}
	if r.ReceiptNo == "" {
		r.ReceiptNo = fallbackRef("MM-INV-")
	}
	if r.Total == 0 {
		r.Total = r.Subtotal + r.Tax
	}

	if resp != nil && resp.Payment != nil {
		if resp.Payment.TransactionReference != "" {
			r.TransactionReference = resp.Payment.TransactionReference
		}
		if resp.Payment.PaidAt != "" {
			r.PaidAt = resp.Payment.PaidAt
		}
	}
	if r.TransactionReference == "" {
		r.TransactionReference = fallbackRef("MM-BILL-")
	}
	return r
}

// BuildPlanReceipt renders the confirmation for a plan activation.
func BuildPlanReceipt(customerName string, plan *dairyapi.Plan, resp *dairyapi.SubscribeResponse, details *dairyapi.PaymentDetails) models.Receipt {
	r := models.Receipt{
		Type:          "subscription",
		Title:         "Subscription activated",
		CustomerName:  customerName,
		PaymentMethod: details.PaymentMethod,
		PaymentDetail: PaymentDetailSummary(details),
		PaidAt:        time.Now().Format(time.RFC3339),
	}
	if plan != nil {
		r.Subtitle = plan.Name
		r.Subtotal = float64(plan.Price)
		r.Total = float64(plan.Price)
	}

	if resp != nil && resp.Payment != nil {
		p := resp.Payment
		r.ReceiptNo = "MM-INV-" + itoa(p.PaymentID)
		if p.Amount > 0 {
			r.Subtotal = float64(p.Amount)
			r.Total = float64(p.Amount)
		}
		if p.TransactionReference != "" {
			r.TransactionReference = p.TransactionReference
		}
		if p.PaidAt != "" {
			r.PaidAt = p.PaidAt
		}
	}
	if resp != nil && resp.Subscription != nil && resp.Subscription.Name != "" {
		r.Subtitle = resp.Subscription.Name
	}
	if r.ReceiptNo == "" {
		r.ReceiptNo = fallbackRef("MM-INV-")
	}
	if r.TransactionReference == "" {
		r.TransactionReference = fallbackRef("MM-BILL-")
	}
	return r
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
