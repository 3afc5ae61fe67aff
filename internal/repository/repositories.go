// Package repository holds the SQL access for customers and rentals.
package repository

import (
	"github.com/deppfellow/shoe-rental/internal/server"
)

type Repositories struct {
	Customer *CustomerRepository
	Rental   *RentalRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Customer: NewCustomerRepository(s.DB.Pool),
		Rental:   NewRentalRepository(s.DB.Pool),
	}
}
