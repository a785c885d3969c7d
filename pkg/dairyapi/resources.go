package dairyapi

import (
	"context"
	"net/http"
	"net/url"
)

// Admins.

func (c *Client) ListAdmins(ctx context.Context, session string) ([]Admin, error) {
	return doCollection[Admin](ctx, c, "/admins/", nil, session)
}

func (c *Client) ActiveAdmins(ctx context.Context, session string) ([]Admin, error) {
	return doCollection[Admin](ctx, c, "/admins/active_admins/", nil, session)
}

func (c *Client) GetAdmin(ctx context.Context, session string, id int) (*Admin, error) {
	var out Admin
	if _, err := c.do(ctx, http.MethodGet, "/admins/"+itoa(id)+"/", nil, session, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAdmin(ctx context.Context, session string, in *Admin) (*Admin, error) {
	var out Admin
	if _, err := c.do(ctx, http.MethodPost, "/admins/", nil, session, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAdmin is a full-record replace, matching the backend's PUT semantics.
func (c *Client) UpdateAdmin(ctx context.Context, session string, id int, in *Admin) (*Admin, error) {
	var out Admin
	if _, err := c.do(ctx, http.MethodPut, "/admins/"+itoa(id)+"/", nil, session, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAdmin(ctx context.Context, session string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/admins/"+itoa(id)+"/", nil, session, nil, nil)
	return err
}

// Categories.

func (c *Client) ListCategories(ctx context.Context, session string) ([]Category, error) {
	return doCollection[Category](ctx, c, "/categories/", nil, session)
}

func (c *Client) ActiveCategories(ctx context.Context, session string) ([]Category, error) {
	return doCollection[Category](ctx, c, "/categories/active_categories/", nil, session)
}

func (c *Client) GetCategory(ctx context.Context, session string, id int) (*Category, error) {
	var out Category
	if _, err := c.do(ctx, http.MethodGet, "/categories/"+itoa(id)+"/", nil, session, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, session string, in *Category) (*Category, error) {
	var out Category
	if _, err := c.do(ctx, http.MethodPost, "/categories/", nil, session, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, session string, id int, in *Category) (*Category, error) {
	var out Category
	if _, err := c.do(ctx, http.MethodPut, "/categories/"+itoa(id)+"/", nil, session, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, session string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/categories/"+itoa(id)+"/", nil, session, nil, nil)
	return err
}

// Subscription plans.

func (c *Client) ListPlans(ctx context.Context, session string) ([]Plan, error) {
	return doCollection[Plan](ctx, c, "/subscriptions/", nil, session)
}

func (c *Client) ActivePlans(ctx context.Context, session string) ([]Plan, error) {
	return doCollection[Plan](ctx, c, "/subscriptions/active_subscriptions/", nil, session)
}

func (c *Client) GetPlan(ctx context.Context, session string, id int) (*Plan, error) {
	var out Plan
	if _, err := c.do(ctx, http.MethodGet, "/subscriptions/"+itoa(id)+"/", nil, session, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePlan(ctx context.Context, session string, in *Plan) (*Plan, error) {
	var out Plan
	if _, err := c.do(ctx, http.MethodPost, "/subscriptions/", nil, session, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePlan(ctx context.Context, session string, id int, in *Plan) (*Plan, error) {
	var out Plan
	if _, err := c.do(ctx, http.MethodPut, "/subscriptions/"+itoa(id)+"/", nil, session, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePlan(ctx context.Context, session string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/subscriptions/"+itoa(id)+"/", nil, session, nil, nil)
	return err
}

// Customers.

func (c *Client) ListCustomers(ctx context.Context, session string) ([]Customer, error) {
	return doCollection[Customer](ctx, c, "/customers/", nil, session)
}

func (c *Client) ActiveCustomers(ctx context.Context, session string) ([]Customer, error) {
	return doCollection[Customer](ctx, c, "/customers/active_customers/", nil, session)
}

func (c *Client) GetCustomer(ctx context.Context, session string, id int) (*Customer, error) {
	var out Customer
	if _, err := c.do(ctx, http.MethodGet, "/customers/"+itoa(id)+"/", nil, session, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, session string, in *Customer) (*Customer, error) {
	var out Customer
	if _, err := c.do(ctx, http.MethodPost, "/customers/", nil, session, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, session string, id int, in *Customer) (*Customer, error) {
	var out Customer
	if _, err := c.do(ctx, http.MethodPut, "/customers/"+itoa(id)+"/", nil, session, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, session string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/customers/"+itoa(id)+"/", nil, session, nil, nil)
	return err
}

// Products.

func (c *Client) ListProducts(ctx context.Context, session string) ([]Product, error) {
	return doCollection[Product](ctx, c, "/products/", nil, session)
}

func (c *Client) FeaturedProducts(ctx context.Context, session string) ([]Product, error) {
	return doCollection[Product](ctx, c, "/products/featured_products/", nil, session)
}

func (c *Client) ProductsByCategory(ctx context.Context, session string, categoryID int) ([]Product, error) {
	q := url.Values{}
	q.Set("category", itoa(categoryID))
	return doCollection[Product](ctx, c, "/products/by_category/", q, session)
}

func (c *Client) GetProduct(ctx context.Context, session string, id int) (*Product, error) {
	var out Product
	if _, err := c.do(ctx, http.MethodGet, "/products/"+itoa(id)+"/", nil, session, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, session string, in *Product) (*Product, error) {
	var out Product
	if _, err := c.do(ctx, http.MethodPost, "/products/", nil, session, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, session string, id int, in *Product) (*Product, error) {
	var out Product
	if _, err := c.do(ctx, http.MethodPut, "/products/"+itoa(id)+"/", nil, session, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, session string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/"+itoa(id)+"/", nil, session, nil, nil)
	return err
}
