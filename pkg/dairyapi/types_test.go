package dairyapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyUnmarshalNumber(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`52`), &m))
	assert.Equal(t, Money(52), m)
}

func TestMoneyUnmarshalDecimalString(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"68.50"`), &m))
	assert.Equal(t, Money(68.5), m)
}

func TestMoneyUnmarshalBlankAndNull(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`""`), &m))
	assert.Equal(t, Money(0), m)

	m = 99
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Equal(t, Money(0), m)
}

func TestMoneyUnmarshalGarbageStringIsZero(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"free"`), &m))
	assert.Equal(t, Money(0), m)
}

func TestBasketItemIsActiveOmitted(t *testing.T) {
	var item BasketItem
	require.NoError(t, json.Unmarshal([]byte(`{"basket_item_id":1,"product":2,"quantity":3}`), &item))
	assert.Nil(t, item.IsActive)

	require.NoError(t, json.Unmarshal([]byte(`{"basket_item_id":1,"is_active":false}`), &item))
	require.NotNil(t, item.IsActive)
	assert.False(t, *item.IsActive)
}
