package service

import (
	"fmt"
	"strings"

	"github.com/milkroute/storefront_api/internal/utils"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// Payment methods accepted at checkout and plan activation.
const (
	MethodCard       = "card"
	MethodUPI        = "upi"
	MethodNetBanking = "netbanking"
	MethodCOD        = "cod"
)

// ValidatePayment checks the method-specific required fields before anything
// is sent to the backend. Card needs number, expiry and CVV; UPI needs a
// handle containing "@"; net banking needs a bank name; cash on delivery
// needs nothing.
func ValidatePayment(d *dairyapi.PaymentDetails) error {
	switch d.PaymentMethod {
	case MethodCard:
		if strings.TrimSpace(d.CardNumber) == "" ||
			strings.TrimSpace(d.Expiry) == "" ||
			strings.TrimSpace(d.CVV) == "" {
			return fmt.Errorf("%w: card number, expiry and CVV are required", utils.ErrInvalidPayment)
		}
	case MethodUPI:
		if !strings.Contains(d.UPIID, "@") {
			return fmt.Errorf("%w: a valid UPI id is required", utils.ErrInvalidPayment)
		}
	case MethodNetBanking:
		if strings.TrimSpace(d.BankName) == "" {
			return fmt.Errorf("%w: bank name is required", utils.ErrInvalidPayment)
		}
	case MethodCOD:
		// nothing to validate
	default:
		return fmt.Errorf("%w: unknown payment method %q", utils.ErrInvalidPayment, d.PaymentMethod)
	}
	return nil
}

// PaymentDetailSummary is the masked method detail shown on receipts.
func PaymentDetailSummary(d *dairyapi.PaymentDetails) string {
	switch d.PaymentMethod {
	case MethodCard:
		digits := strings.ReplaceAll(strings.TrimSpace(d.CardNumber), " ", "")
		if len(digits) >= 4 {
			return "Card ending " + digits[len(digits)-4:]
		}
		return "Card"
	case MethodUPI:
		return d.UPIID
	case MethodNetBanking:
		return d.BankName
	case MethodCOD:
		return "Cash on delivery"
	}
	return ""
}
