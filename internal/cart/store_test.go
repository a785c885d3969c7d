package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milkroute/storefront_api/internal/models"
)

func milkLine(qty int) models.CartLine {
	return models.CartLine{LineKey: "1", ProductID: 1, Name: "Fresh Whole Milk", Price: 52, Quantity: qty}
}

func TestAddMergesSameProduct(t *testing.T) {
	store := NewStore()

	store.Add("s1", milkLine(1))
	lines := store.Add("s1", milkLine(1))

	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddZeroOrNegativeRemovesLine(t *testing.T) {
	store := NewStore()

	store.Add("s1", milkLine(2))
	lines := store.Add("s1", milkLine(-2))
	assert.Empty(t, lines)

	lines = store.SetQuantity("s1", "1", 0)
	assert.Empty(t, lines)
}

func TestSetQuantityPins(t *testing.T) {
	store := NewStore()

	store.Add("s1", milkLine(1))
	lines := store.SetQuantity("s1", "1", 5)

	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCartsAreSessionScoped(t *testing.T) {
	store := NewStore()

	store.Add("s1", milkLine(1))
	assert.Empty(t, store.Lines("s2"))
}

func catalogFixture() []CatalogEntry {
	return []CatalogEntry{
		{ID: 1, Name: "Fresh Whole Milk", Price: 52},
		{ID: 2, Name: "Organic Paneer", Price: 68, RequiresSubscription: true},
		{ID: 3, Name: "Natural Curd", Price: 35},
	}
}

func TestMergeIntentResolvesByID(t *testing.T) {
	store := NewStore()

	intent := models.PendingIntent{Items: []models.IntentItem{{ProductID: 3, Name: "anything", Quantity: 2}}}
	lines := store.MergeIntent("s1", intent, catalogFixture())

	require.Len(t, lines, 1)
	assert.Equal(t, "Natural Curd", lines[0].Name)
	assert.Equal(t, 35.0, lines[0].Price)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.False(t, lines[0].Unavailable)
}

func TestMergeIntentResolvesByNormalizedName(t *testing.T) {
	store := NewStore()

	intent := models.PendingIntent{Items: []models.IntentItem{{Name: "  fresh   WHOLE milk ", Quantity: 1}}}
	lines := store.MergeIntent("s1", intent, catalogFixture())

	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].ProductID)
}

func TestMergeIntentUnresolvedStaysVisible(t *testing.T) {
	store := NewStore()

	intent := models.PendingIntent{Items: []models.IntentItem{{Name: "Goat Cheese", Quantity: 1}}}
	lines := store.MergeIntent("s1", intent, catalogFixture())

	require.Len(t, lines, 1)
	assert.True(t, lines[0].Unavailable)
	assert.Equal(t, "Goat Cheese", lines[0].Name)
	assert.Equal(t, "missing-goat-cheese-0", lines[0].LineKey)
}

func TestMergeIntentQuantityFloorsAtOne(t *testing.T) {
	store := NewStore()

	intent := models.PendingIntent{Items: []models.IntentItem{{ProductID: 1, Name: "Fresh Whole Milk", Quantity: 0}}}
	lines := store.MergeIntent("s1", intent, catalogFixture())

	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestMergeIntentMergesIntoExistingCart(t *testing.T) {
	store := NewStore()
	store.Add("s1", milkLine(1))

	intent := models.PendingIntent{Items: []models.IntentItem{
		{ProductID: 1, Name: "Fresh Whole Milk", Quantity: 2},
		{ProductID: 3, Name: "Natural Curd", Quantity: 1},
	}}
	lines := store.MergeIntent("s1", intent, catalogFixture())

	require.Len(t, lines, 2)
	byKey := map[string]models.CartLine{}
	for _, l := range lines {
		byKey[l.LineKey] = l
	}
	assert.Equal(t, 3, byKey["1"].Quantity)
	assert.Equal(t, 1, byKey["3"].Quantity)
}

func TestMergeIntentCarriesSubscriptionFlag(t *testing.T) {
	store := NewStore()

	intent := models.PendingIntent{Items: []models.IntentItem{{ProductID: 2, Name: "Organic Paneer", Quantity: 1}}}
	lines := store.MergeIntent("s1", intent, catalogFixture())

	require.Len(t, lines, 1)
	assert.True(t, lines[0].RequiresSubscription)
}

func TestSortLinesUnavailableLast(t *testing.T) {
	lines := []models.CartLine{
		{LineKey: "missing-x-0", Unavailable: true, Quantity: 1},
		{LineKey: "2", Quantity: 1},
		{LineKey: "1", Quantity: 1},
	}
	SortLines(lines)

	assert.Equal(t, "1", lines[0].LineKey)
	assert.Equal(t, "2", lines[1].LineKey)
	assert.True(t, lines[2].Unavailable)
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.Add("s1", milkLine(1))
	store.Clear("s1")
	assert.Empty(t, store.Lines("s1"))
}
