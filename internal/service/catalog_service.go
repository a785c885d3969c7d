package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// CatalogService is the admin-side catalog surface: the five record types,
// full-replace updates, and a fresh list fetched after every mutation so the
// caller never renders stale data.
type CatalogService struct {
	api *dairyapi.Client
}

func NewCatalogService(api *dairyapi.Client) *CatalogService {
	return &CatalogService{api: api}
}

// Admins.

func (s *CatalogService) Admins(ctx context.Context, session string) ([]dairyapi.Admin, error) {
	return s.api.ListAdmins(ctx, session)
}

func (s *CatalogService) ActiveAdmins(ctx context.Context, session string) ([]dairyapi.Admin, error) {
	return s.api.ActiveAdmins(ctx, session)
}

func (s *CatalogService) SaveAdmin(ctx context.Context, session string, id int, in *dairyapi.Admin) ([]dairyapi.Admin, error) {
	var err error
	if id > 0 {
		_, err = s.api.UpdateAdmin(ctx, session, id, in)
	} else {
		_, err = s.api.CreateAdmin(ctx, session, in)
	}
	if err != nil {
		return nil, err
	}
	log.Info().Int("admin_id", id).Msg("Admin record saved")
	return s.api.ListAdmins(ctx, session)
}

func (s *CatalogService) DeleteAdmin(ctx context.Context, session string, id int) ([]dairyapi.Admin, error) {
	if err := s.api.DeleteAdmin(ctx, session, id); err != nil {
		return nil, err
	}
	return s.api.ListAdmins(ctx, session)
}

// Categories.

func (s *CatalogService) Categories(ctx context.Context, session string) ([]dairyapi.Category, error) {
	return s.api.ListCategories(ctx, session)
}

func (s *CatalogService) ActiveCategories(ctx context.Context, session string) ([]dairyapi.Category, error) {
	return s.api.ActiveCategories(ctx, session)
}

func (s *CatalogService) SaveCategory(ctx context.Context, session string, id int, in *dairyapi.Category) ([]dairyapi.Category, error) {
	var err error
	if id > 0 {
		_, err = s.api.UpdateCategory(ctx, session, id, in)
	} else {
		_, err = s.api.CreateCategory(ctx, session, in)
	}
	if err != nil {
		return nil, err
	}
	return s.api.ListCategories(ctx, session)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, session string, id int) ([]dairyapi.Category, error) {
	if err := s.api.DeleteCategory(ctx, session, id); err != nil {
		return nil, err
	}
	return s.api.ListCategories(ctx, session)
}

// Subscription plans.

func (s *CatalogService) Plans(ctx context.Context, session string) ([]dairyapi.Plan, error) {
	return s.api.ListPlans(ctx, session)
}

func (s *CatalogService) ActivePlans(ctx context.Context, session string) ([]dairyapi.Plan, error) {
	return s.api.ActivePlans(ctx, session)
}

func (s *CatalogService) SavePlan(ctx context.Context, session string, id int, in *dairyapi.Plan) ([]dairyapi.Plan, error) {
	var err error
	if id > 0 {
		_, err = s.api.UpdatePlan(ctx, session, id, in)
	} else {
		_, err = s.api.CreatePlan(ctx, session, in)
	}
	if err != nil {
		return nil, err
	}
	return s.api.ListPlans(ctx, session)
}

func (s *CatalogService) DeletePlan(ctx context.Context, session string, id int) ([]dairyapi.Plan, error) {
	if err := s.api.DeletePlan(ctx, session, id); err != nil {
		return nil, err
	}
	return s.api.ListPlans(ctx, session)
}

// Customers.

func (s *CatalogService) Customers(ctx context.Context, session string) ([]dairyapi.Customer, error) {
	return s.api.ListCustomers(ctx, session)
}

func (s *CatalogService) ActiveCustomers(ctx context.Context, session string) ([]dairyapi.Customer, error) {
	return s.api.ActiveCustomers(ctx, session)
}

func (s *CatalogService) SaveCustomer(ctx context.Context, session string, id int, in *dairyapi.Customer) ([]dairyapi.Customer, error) {
	var err error
	if id > 0 {
		_, err = s.api.UpdateCustomer(ctx, session, id, in)
	} else {
		_, err = s.api.CreateCustomer(ctx, session, in)
	}
	if err != nil {
		return nil, err
	}
	return s.api.ListCustomers(ctx, session)
}

func (s *CatalogService) DeleteCustomer(ctx context.Context, session string, id int) ([]dairyapi.Customer, error) {
	if err := s.api.DeleteCustomer(ctx, session, id); err != nil {
		return nil, err
	}
	return s.api.ListCustomers(ctx, session)
}

// Products.

func (s *CatalogService) Products(ctx context.Context, session string) ([]dairyapi.Product, error) {
	return s.api.ListProducts(ctx, session)
}

func (s *CatalogService) ProductsByCategory(ctx context.Context, session string, categoryID int) ([]dairyapi.Product, error) {
	return s.api.ProductsByCategory(ctx, session, categoryID)
}

func (s *CatalogService) SaveProduct(ctx context.Context, session string, id int, in *dairyapi.Product) ([]dairyapi.Product, error) {
	var err error
	if id > 0 {
		_, err = s.api.UpdateProduct(ctx, session, id, in)
	} else {
		_, err = s.api.CreateProduct(ctx, session, in)
	}
	if err != nil {
		return nil, err
	}
	return s.api.ListProducts(ctx, session)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, session string, id int) ([]dairyapi.Product, error) {
	if err := s.api.DeleteProduct(ctx, session, id); err != nil {
		return nil, err
	}
	return s.api.ListProducts(ctx, session)
}
