package dairyapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCollectionBareArray(t *testing.T) {
	body := []byte(`[{"category_id":1,"name":"Milk"},{"category_id":2,"name":"Curd"}]`)

	items, err := decodeCollection[Category](body)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Milk", items[0].Name)
	assert.Equal(t, 2, items[1].CategoryID)
}

func TestDecodeCollectionResultsEnvelope(t *testing.T) {
	body := []byte(`{"count":2,"results":[{"category_id":1,"name":"Milk"}]}`)

	items, err := decodeCollection[Category](body)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Milk", items[0].Name)
}

func TestDecodeCollectionEmptyBody(t *testing.T) {
	items, err := decodeCollection[Category](nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDecodeCollectionMalformed(t *testing.T) {
	_, err := decodeCollection[Category]([]byte(`{"results": "nope"}`))
	assert.Error(t, err)
}
