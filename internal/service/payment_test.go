package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milkroute/storefront_api/internal/utils"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

func TestValidatePaymentCard(t *testing.T) {
	ok := &dairyapi.PaymentDetails{PaymentMethod: MethodCard, CardNumber: "4111111111111111", Expiry: "12/27", CVV: "123"}
	assert.NoError(t, ValidatePayment(ok))

	missing := &dairyapi.PaymentDetails{PaymentMethod: MethodCard, CardNumber: "4111111111111111", Expiry: "12/27"}
	assert.ErrorIs(t, ValidatePayment(missing), utils.ErrInvalidPayment)
}

func TestValidatePaymentUPINeedsHandle(t *testing.T) {
	assert.NoError(t, ValidatePayment(&dairyapi.PaymentDetails{PaymentMethod: MethodUPI, UPIID: "asha@upi"}))
	assert.ErrorIs(t, ValidatePayment(&dairyapi.PaymentDetails{PaymentMethod: MethodUPI, UPIID: "asha"}), utils.ErrInvalidPayment)
}

func TestValidatePaymentNetBanking(t *testing.T) {
	assert.NoError(t, ValidatePayment(&dairyapi.PaymentDetails{PaymentMethod: MethodNetBanking, BankName: "State Bank"}))
	assert.ErrorIs(t, ValidatePayment(&dairyapi.PaymentDetails{PaymentMethod: MethodNetBanking, BankName: "  "}), utils.ErrInvalidPayment)
}

func TestValidatePaymentCODNeedsNothing(t *testing.T) {
	assert.NoError(t, ValidatePayment(&dairyapi.PaymentDetails{PaymentMethod: MethodCOD}))
}

func TestValidatePaymentUnknownMethod(t *testing.T) {
	assert.ErrorIs(t, ValidatePayment(&dairyapi.PaymentDetails{PaymentMethod: "barter"}), utils.ErrInvalidPayment)
}

func TestPaymentDetailSummaryMasksCard(t *testing.T) {
	detail := PaymentDetailSummary(&dairyapi.PaymentDetails{PaymentMethod: MethodCard, CardNumber: "4111 1111 1111 1234"})
	assert.Equal(t, "Card ending 1234", detail)
}
