package dairyapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIErrorDetailWinsFirst(t *testing.T) {
	body := []byte(`{"detail":"not found","error":"other","email":["bad email"]}`)

	err := parseAPIError(404, body)
	assert.Equal(t, "not found", err.Error())
	assert.Equal(t, 404, err.StatusCode)
}

func TestParseAPIErrorNonFieldErrors(t *testing.T) {
	body := []byte(`{"non_field_errors":["invalid credentials","second"]}`)

	err := parseAPIError(400, body)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestParseAPIErrorFieldMapDeterministic(t *testing.T) {
	// first field in key order wins, not map iteration order
	body := []byte(`{"zeta":["last"],"alpha":["first"]}`)

	for i := 0; i < 20; i++ {
		err := parseAPIError(400, body)
		assert.Equal(t, "first", err.Error())
	}
}

func TestParseAPIErrorReasonOverridesMessage(t *testing.T) {
	body := []byte(`{"error":"rejected","reason":"plan expired"}`)

	err := parseAPIError(409, body)
	assert.Equal(t, "plan expired", err.Error())
}

func TestParseAPIErrorSubscriptionOnlyItems(t *testing.T) {
	body := []byte(`{"error":"subscription required","subscription_only_items":[{"product_id":7,"name":"Organic Paneer"}]}`)

	err := parseAPIError(409, body)
	require.True(t, err.IsSubscriptionOnlyRejection())
	assert.Equal(t, 7, err.SubscriptionOnlyItems[0].ProductID)
}

func TestParseAPIErrorUnparseableBody(t *testing.T) {
	err := parseAPIError(500, []byte(`<html>boom</html>`))
	assert.Equal(t, "Request failed", err.Message)
	assert.Equal(t, 500, err.StatusCode)
}
