package handler

import (
	"github.com/deppfellow/shoe-rental/internal/server"
	"github.com/deppfellow/shoe-rental/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Customer *CustomerHandler
	Rental   *RentalHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Customer: NewCustomerHandler(s, services.Customer),
		Rental:   NewRentalHandler(s, services.Rental),
	}
}
