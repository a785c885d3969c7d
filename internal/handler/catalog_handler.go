package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/milkroute/storefront_api/internal/forms"
	"github.com/milkroute/storefront_api/internal/gridview"
	"github.com/milkroute/storefront_api/internal/middleware"
	"github.com/milkroute/storefront_api/internal/service"
	"github.com/milkroute/storefront_api/internal/utils"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// CatalogHandler handles the admin record pages. Every list renders through
// the shared grid: searched, paged, ten rows a page. Mutations respond with
// the freshly re-fetched collection.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func backendSession(c *gin.Context) string {
	if rec := middleware.CurrentSession(c); rec != nil {
		return rec.BackendSession
	}
	return ""
}

func gridParams(c *gin.Context) (query string, page int, queryChanged bool) {
	query = c.Query("q")
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	queryChanged = c.Query("q_changed") == "true"
	return
}

func respondGrid(c *gin.Context, message string, table *gridview.Table, records any) {
	query, page, changed := gridParams(c)
	view := table.View(query, page, changed)
	utils.SuccessWithPagination(c, 200, message, gin.H{
		"grid":    view,
		"records": records,
	}, view.Page, gridview.PageSize, view.TotalRows)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(c, 400, "INVALID_ID", "Invalid record ID")
		return 0, false
	}
	return id, true
}

// Admins.

// ListAdmins handles GET /admin/admins
func (h *CatalogHandler) ListAdmins(c *gin.Context) {
	records, err := h.catalogService.Admins(c.Request.Context(), backendSession(c))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Admins retrieved", service.AdminsGrid(records), records)
}

// ActiveAdmins handles GET /admin/admins/active. The active subset feeds
// option lists, so it skips the grid.
func (h *CatalogHandler) ActiveAdmins(c *gin.Context) {
	records, err := h.catalogService.ActiveAdmins(c.Request.Context(), backendSession(c))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Active admins retrieved", gin.H{"records": records})
}

// SaveAdmin handles POST /admin/admins and PUT /admin/admins/:id
func (h *CatalogHandler) SaveAdmin(c *gin.Context) {
	var req dairyapi.Admin
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	id := 0
	if c.Param("id") != "" {
		var ok bool
		if id, ok = pathID(c); !ok {
			return
		}
	}
	records, err := h.catalogService.SaveAdmin(c.Request.Context(), backendSession(c), id, &req)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Admin saved", service.AdminsGrid(records), records)
}

// DeleteAdmin handles DELETE /admin/admins/:id
func (h *CatalogHandler) DeleteAdmin(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	records, err := h.catalogService.DeleteAdmin(c.Request.Context(), backendSession(c), id)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Admin deleted", service.AdminsGrid(records), records)
}

// Categories.

// ListCategories handles GET /admin/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	records, err := h.catalogService.Categories(c.Request.Context(), backendSession(c))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Categories retrieved", service.CategoriesGrid(records), records)
}

// ActiveCategories handles GET /admin/categories/active, the option list for
// the product form.
func (h *CatalogHandler) ActiveCategories(c *gin.Context) {
	records, err := h.catalogService.ActiveCategories(c.Request.Context(), backendSession(c))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Active categories retrieved", gin.H{"records": records})
}

// SaveCategory handles POST /admin/categories and PUT /admin/categories/:id
func (h *CatalogHandler) SaveCategory(c *gin.Context) {
	var req dairyapi.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	id := 0
	if c.Param("id") != "" {
		var ok bool
		if id, ok = pathID(c); !ok {
			return
		}
	}
	records, err := h.catalogService.SaveCategory(c.Request.Context(), backendSession(c), id, &req)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Category saved", service.CategoriesGrid(records), records)
}

// DeleteCategory handles DELETE /admin/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	records, err := h.catalogService.DeleteCategory(c.Request.Context(), backendSession(c), id)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Category deleted", service.CategoriesGrid(records), records)
}

// Subscription plans.

type planForm struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	BillingCycle string  `json:"billing_cycle"`
	DurationDays int     `json:"duration_days"`
	MaxProducts  int     `json:"max_products"`
	FeaturesRaw  string  `json:"features_raw"`
	IsActive     bool    `json:"is_active"`
}

// ListPlans handles GET /admin/plans
func (h *CatalogHandler) ListPlans(c *gin.Context) {
	records, err := h.catalogService.Plans(c.Request.Context(), backendSession(c))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Plans retrieved", service.PlansGrid(records), records)
}

// ActivePlans handles GET /admin/plans/active.
func (h *CatalogHandler) ActivePlans(c *gin.Context) {
	records, err := h.catalogService.ActivePlans(c.Request.Context(), backendSession(c))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Active plans retrieved", gin.H{"records": records})
}

// SavePlan handles POST /admin/plans and PUT /admin/plans/:id. The feature
// list arrives as raw form text; a malformed list is a validation error.
func (h *CatalogHandler) SavePlan(c *gin.Context) {
	var form planForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	features, err := forms.ParseFeatures(form.FeaturesRaw)
	if err != nil {
		utils.Error(c, 400, "INVALID_FEATURES", "Feature list could not be parsed")
		return
	}
	id := 0
	if c.Param("id") != "" {
		var ok bool
		if id, ok = pathID(c); !ok {
			return
		}
	}

	plan := &dairyapi.Plan{
		Name:         form.Name,
		Description:  form.Description,
		Price:        dairyapi.Money(form.Price),
		BillingCycle: form.BillingCycle,
		DurationDays: form.DurationDays,
		MaxProducts:  form.MaxProducts,
		Features:     features,
		IsActive:     form.IsActive,
	}
	records, err := h.catalogService.SavePlan(c.Request.Context(), backendSession(c), id, plan)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Plan saved", service.PlansGrid(records), records)
}

// DeletePlan handles DELETE /admin/plans/:id
func (h *CatalogHandler) DeletePlan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	records, err := h.catalogService.DeletePlan(c.Request.Context(), backendSession(c), id)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Plan deleted", service.PlansGrid(records), records)
}

// Customers.

// ListCustomers handles GET /admin/customers
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	records, err := h.catalogService.Customers(c.Request.Context(), backendSession(c))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Customers retrieved", service.CustomersGrid(records), records)
}

// ActiveCustomers handles GET /admin/customers/active.
func (h *CatalogHandler) ActiveCustomers(c *gin.Context) {
	records, err := h.catalogService.ActiveCustomers(c.Request.Context(), backendSession(c))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Active customers retrieved", gin.H{"records": records})
}

// SaveCustomer handles POST /admin/customers and PUT /admin/customers/:id
func (h *CatalogHandler) SaveCustomer(c *gin.Context) {
	var req dairyapi.Customer
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	id := 0
	if c.Param("id") != "" {
		var ok bool
		if id, ok = pathID(c); !ok {
			return
		}
	}
	records, err := h.catalogService.SaveCustomer(c.Request.Context(), backendSession(c), id, &req)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Customer saved", service.CustomersGrid(records), records)
}

// DeleteCustomer handles DELETE /admin/customers/:id
func (h *CatalogHandler) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	records, err := h.catalogService.DeleteCustomer(c.Request.Context(), backendSession(c), id)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Customer deleted", service.CustomersGrid(records), records)
}

// Products.

type productForm struct {
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	Category         int     `json:"category"`
	Price            float64 `json:"price"`
	Cost             float64 `json:"cost"`
	QuantityInStock  int     `json:"quantity_in_stock"`
	SKU              string  `json:"sku"`
	Status           string  `json:"status"`
	IsFeatured       bool    `json:"is_featured"`
	SubscriptionOnly bool    `json:"subscription_only"`
	TagsRaw          string  `json:"tags_raw"`
}

// ListProducts handles GET /admin/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		records []dairyapi.Product
		err     error
	)
	if raw := c.Query("category"); raw != "" {
		categoryID, convErr := strconv.Atoi(raw)
		if convErr != nil {
			utils.Error(c, 400, "INVALID_CATEGORY", "Invalid category ID")
			return
		}
		records, err = h.catalogService.ProductsByCategory(ctx, backendSession(c), categoryID)
	} else {
		records, err = h.catalogService.Products(ctx, backendSession(c))
	}
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Products retrieved", service.ProductsGrid(records), records)
}

// SaveProduct handles POST /admin/products and PUT /admin/products/:id
func (h *CatalogHandler) SaveProduct(c *gin.Context) {
	var form productForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	id := 0
	if c.Param("id") != "" {
		var ok bool
		if id, ok = pathID(c); !ok {
			return
		}
	}

	product := &dairyapi.Product{
		Name:             form.Name,
		Description:      form.Description,
		Category:         form.Category,
		Price:            dairyapi.Money(form.Price),
		Cost:             dairyapi.Money(form.Cost),
		QuantityInStock:  form.QuantityInStock,
		SKU:              form.SKU,
		Status:           form.Status,
		IsFeatured:       form.IsFeatured,
		SubscriptionOnly: form.SubscriptionOnly,
		Tags:             forms.ParseTags(form.TagsRaw),
	}
	records, err := h.catalogService.SaveProduct(c.Request.Context(), backendSession(c), id, product)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Product saved", service.ProductsGrid(records), records)
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	records, err := h.catalogService.DeleteProduct(c.Request.Context(), backendSession(c), id)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	respondGrid(c, "Product deleted", service.ProductsGrid(records), records)
}
