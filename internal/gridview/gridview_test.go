package gridview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(rows int) *Table {
	columns := []Column{
		{Key: "id", Label: "ID"},
		{Key: "name", Label: "Name"},
	}
	data := make([]Row, rows)
	for i := range data {
		data[i] = Row{"id": i + 1, "name": fmt.Sprintf("Product %02d", i+1)}
	}
	return New(columns, data)
}

func TestViewPageSize(t *testing.T) {
	table := testTable(25)

	page := table.View("", 1, false)
	assert.Len(t, page.Rows, PageSize)
	assert.Equal(t, 25, page.TotalRows)
	assert.Equal(t, 3, page.TotalPages)

	last := table.View("", 3, false)
	assert.Len(t, last.Rows, 5)
}

func TestViewSearchIsCaseInsensitiveSubstring(t *testing.T) {
	columns := []Column{{Key: "name", Label: "Name"}}
	table := New(columns, []Row{
		{"name": "Fresh Whole Milk"},
		{"name": "Organic Paneer"},
		{"name": "Buttermilk"},
	})

	page := table.View("MILK", 1, true)
	require.Equal(t, 2, page.TotalRows)
	assert.Equal(t, "Fresh Whole Milk", page.Rows[0]["name"])
	assert.Equal(t, "Buttermilk", page.Rows[1]["name"])
}

func TestViewSearchChangeResetsToPageOne(t *testing.T) {
	table := testTable(30)

	page := table.View("product", 3, true)
	assert.Equal(t, 1, page.Page)
}

func TestViewPageClamped(t *testing.T) {
	table := testTable(15)

	assert.Equal(t, 2, table.View("", 99, false).Page)
	assert.Equal(t, 1, table.View("", -4, false).Page)
}

func TestViewNoMatchesStillOnePage(t *testing.T) {
	table := testTable(5)

	page := table.View("zzz", 1, true)
	assert.Equal(t, 0, page.TotalRows)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Rows)
}

func TestViewSearchMatchesNumericAndBoolCells(t *testing.T) {
	columns := []Column{
		{Key: "id", Label: "ID"},
		{Key: "active", Label: "Active"},
	}
	table := New(columns, []Row{
		{"id": 42, "active": true},
		{"id": 7, "active": false},
	})

	assert.Equal(t, 1, table.View("42", 1, true).TotalRows)
	assert.Equal(t, 1, table.View("yes", 1, true).TotalRows)
}

func TestViewRendererOverridesDisplayOnly(t *testing.T) {
	columns := []Column{
		{Key: "price", Label: "Price", Render: func(v any) string {
			f, _ := v.(float64)
			return fmt.Sprintf("Rs %.2f", f)
		}},
	}
	table := New(columns, []Row{{"price": 52.0}})

	page := table.View("", 1, false)
	assert.Equal(t, "Rs 52.00", page.Rows[0]["price"])
	// search runs on the raw value, not the rendered one
	assert.Equal(t, 1, table.View("52", 1, true).TotalRows)
}
