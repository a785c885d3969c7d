package gridview

import (
	"fmt"
	"strings"
)

// PageSize is the fixed number of rows per page.
const PageSize = 10

// Column describes one table column. Render, when set, overrides the default
// stringification for display; search always runs over the raw value.
type Column struct {
	Key    string
	Label  string
	Render func(value any) string
}

// Row is one record keyed by column key.
type Row map[string]any

// Page is one rendered slice of the table.
type Page struct {
	Columns    []ColumnView `json:"columns"`
	Rows       []RowView    `json:"rows"`
	Page       int          `json:"page"`
	TotalRows  int          `json:"total_rows"`
	TotalPages int          `json:"total_pages"`
	Query      string       `json:"query,omitempty"`
}

// ColumnView is the serializable column header.
type ColumnView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// RowView is one rendered row, cell values stringified per column.
type RowView map[string]string

// Table pairs column descriptors with rows and renders searched, paged views.
type Table struct {
	columns []Column
	rows    []Row
}

// New builds a table over the given columns and rows.
func New(columns []Column, rows []Row) *Table {
	return &Table{columns: columns, rows: rows}
}

// View renders one page. query filters rows by case-insensitive substring
// match across every stringified cell; a non-empty query always views from
// page one. page is clamped into the valid range.
func (t *Table) View(query string, page int, queryChanged bool) Page {
	filtered := t.rows
	q := strings.ToLower(strings.TrimSpace(query))
	if q != "" {
		filtered = make([]Row, 0, len(t.rows))
		for _, row := range t.rows {
			if t.matches(row, q) {
				filtered = append(filtered, row)
			}
		}
	}
	if queryChanged {
		page = 1
	}

	totalRows := len(filtered)
	totalPages := (totalRows + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > totalRows {
		end = totalRows
	}

	views := make([]RowView, 0, end-start)
	for _, row := range filtered[start:end] {
		view := make(RowView, len(t.columns))
		for _, col := range t.columns {
			view[col.Key] = t.renderCell(col, row[col.Key])
		}
		views = append(views, view)
	}

	headers := make([]ColumnView, len(t.columns))
	for i, col := range t.columns {
		headers[i] = ColumnView{Key: col.Key, Label: col.Label}
	}

	return Page{
		Columns:    headers,
		Rows:       views,
		Page:       page,
		TotalRows:  totalRows,
		TotalPages: totalPages,
		Query:      strings.TrimSpace(query),
	}
}

func (t *Table) matches(row Row, q string) bool {
	for _, col := range t.columns {
		if strings.Contains(strings.ToLower(stringify(row[col.Key])), q) {
			return true
		}
	}
	return false
}

func (t *Table) renderCell(col Column, value any) string {
	if col.Render != nil {
		return col.Render(value)
	}
	return stringify(value)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	default:
		return fmt.Sprintf("%v", v)
	}
}
