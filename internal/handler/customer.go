package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/shoe-rental/internal/errs"
	"github.com/deppfellow/shoe-rental/internal/model"
	"github.com/deppfellow/shoe-rental/internal/server"
	"github.com/deppfellow/shoe-rental/internal/sqlerr"
)

type CustomerService interface {
	Create(ctx context.Context, payload *model.CreateCustomerPayload) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
}

type CustomerHandler struct {
	Handler
	customers CustomerService
}

func NewCustomerHandler(s *server.Server, customers CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:   NewHandler(s),
		customers: customers,
	}
}

// CreateCustomer handles POST /api/v1/customers and answers with the
// inserted rows.
//
// Constraint violations reported by PostgreSQL are the client's input and
// become 400s; every other failure is a 500 carrying its message.
func (h *CustomerHandler) CreateCustomer(c echo.Context, payload *model.CreateCustomerPayload) ([]model.Customer, error) {
	customer, err := h.customers.Create(c.Request().Context(), payload)
	if err != nil {
		if sqlerr.ErrCode(err) != sqlerr.Other {
			return nil, sqlerr.HandleError(err)
		}
		return nil, errs.NewWorkflowError(err)
	}
	return []model.Customer{*customer}, nil
}

// ListCustomers handles GET /api/v1/customers.
func (h *CustomerHandler) ListCustomers(c echo.Context, _ *model.ListCustomersPayload) ([]model.Customer, error) {
	customers, err := h.customers.List(c.Request().Context())
	if err != nil {
		return nil, errs.NewWorkflowError(err)
	}
	return customers, nil
}
