package service

import (
	"fmt"

	"github.com/milkroute/storefront_api/internal/gridview"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// Grid builders for the admin record tables. Each maps a record slice onto
// gridview rows; search and paging live in gridview itself.

func money(value any) string {
	f, _ := value.(float64)
	return fmt.Sprintf("%.2f", f)
}

func AdminsGrid(records []dairyapi.Admin) *gridview.Table {
	columns := []gridview.Column{
		{Key: "admin_id", Label: "ID"},
		{Key: "name", Label: "Name"},
		{Key: "email", Label: "Email"},
		{Key: "phone", Label: "Phone"},
		{Key: "username", Label: "Username"},
		{Key: "role", Label: "Role"},
		{Key: "is_active", Label: "Active"},
	}
	rows := make([]gridview.Row, len(records))
	for i, r := range records {
		rows[i] = gridview.Row{
			"admin_id":  r.AdminID,
			"name":      r.FirstName + " " + r.LastName,
			"email":     r.Email,
			"phone":     r.Phone,
			"username":  r.Username,
			"role":      r.Role,
			"is_active": r.IsActive,
		}
	}
	return gridview.New(columns, rows)
}

func CategoriesGrid(records []dairyapi.Category) *gridview.Table {
	columns := []gridview.Column{
		{Key: "category_id", Label: "ID"},
		{Key: "name", Label: "Name"},
		{Key: "description", Label: "Description"},
		{Key: "is_active", Label: "Active"},
	}
	rows := make([]gridview.Row, len(records))
	for i, r := range records {
		rows[i] = gridview.Row{
			"category_id": r.CategoryID,
			"name":        r.Name,
			"description": r.Description,
			"is_active":   r.IsActive,
		}
	}
	return gridview.New(columns, rows)
}

func PlansGrid(records []dairyapi.Plan) *gridview.Table {
	columns := []gridview.Column{
		{Key: "subscription_id", Label: "ID"},
		{Key: "name", Label: "Name"},
		{Key: "price", Label: "Price", Render: money},
		{Key: "billing_cycle", Label: "Billing"},
		{Key: "duration_days", Label: "Days"},
		{Key: "max_products", Label: "Max products"},
		{Key: "is_active", Label: "Active"},
	}
	rows := make([]gridview.Row, len(records))
	for i, r := range records {
		rows[i] = gridview.Row{
			"subscription_id": r.SubscriptionID,
			"name":            r.Name,
			"price":           float64(r.Price),
			"billing_cycle":   r.BillingCycle,
			"duration_days":   r.DurationDays,
			"max_products":    r.MaxProducts,
			"is_active":       r.IsActive,
		}
	}
	return gridview.New(columns, rows)
}

func CustomersGrid(records []dairyapi.Customer) *gridview.Table {
	columns := []gridview.Column{
		{Key: "customer_id", Label: "ID"},
		{Key: "name", Label: "Name"},
		{Key: "email", Label: "Email"},
		{Key: "phone", Label: "Phone"},
		{Key: "city", Label: "City"},
		{Key: "status", Label: "Status"},
		{Key: "is_verified", Label: "Verified"},
	}
	rows := make([]gridview.Row, len(records))
	for i, r := range records {
		rows[i] = gridview.Row{
			"customer_id": r.CustomerID,
			"name":        r.FirstName + " " + r.LastName,
			"email":       r.Email,
			"phone":       r.Phone,
			"city":        r.City,
			"status":      r.Status,
			"is_verified": r.IsVerified,
		}
	}
	return gridview.New(columns, rows)
}

func ProductsGrid(records []dairyapi.Product) *gridview.Table {
	columns := []gridview.Column{
		{Key: "product_id", Label: "ID"},
		{Key: "name", Label: "Name"},
		{Key: "category_name", Label: "Category"},
		{Key: "price", Label: "Price", Render: money},
		{Key: "quantity_in_stock", Label: "Stock"},
		{Key: "sku", Label: "SKU"},
		{Key: "status", Label: "Status"},
		{Key: "subscription_only", Label: "Subscription only"},
	}
	rows := make([]gridview.Row, len(records))
	for i, r := range records {
		rows[i] = gridview.Row{
			"product_id":        r.ProductID,
			"name":              r.Name,
			"category_name":     r.CategoryName,
			"price":             float64(r.Price),
			"quantity_in_stock": r.QuantityInStock,
			"sku":               r.SKU,
			"status":            r.Status,
			"subscription_only": r.SubscriptionOnly,
		}
	}
	return gridview.New(columns, rows)
}
