package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/shoe-rental/internal/errs"
	"github.com/deppfellow/shoe-rental/internal/model"
	"github.com/deppfellow/shoe-rental/internal/server"
)

type RentalService interface {
	Create(ctx context.Context, payload *model.CreateRentalPayload) (*model.Rental, error)
	List(ctx context.Context, customerID int64) ([]model.Rental, error)
}

type RentalHandler struct {
	Handler
	rentals RentalService
}

func NewRentalHandler(s *server.Server, rentals RentalService) *RentalHandler {
	return &RentalHandler{
		Handler: NewHandler(s),
		rentals: rentals,
	}
}

// CreateRental handles POST /api/v1/customer/rentals/ and answers with the
// inserted rows.
//
// Every workflow failure (unknown customer, unusable oracle reply, oracle
// outage, storage) is answered with a 500 whose message is the failure.
func (h *RentalHandler) CreateRental(c echo.Context, payload *model.CreateRentalPayload) ([]model.Rental, error) {
	rental, err := h.rentals.Create(c.Request().Context(), payload)
	if err != nil {
		return nil, errs.NewWorkflowError(err)
	}
	return []model.Rental{*rental}, nil
}

// ListRentals handles GET /api/v1/customer/rentals/[?customer_id=N].
func (h *RentalHandler) ListRentals(c echo.Context, payload *model.ListRentalsPayload) ([]model.Rental, error) {
	rentals, err := h.rentals.List(c.Request().Context(), payload.CustomerID)
	if err != nil {
		return nil, errs.NewWorkflowError(err)
	}
	return rentals, nil
}
