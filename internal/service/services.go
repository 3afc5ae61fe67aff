// Package service holds the business workflows behind the HTTP handlers.
package service

import (
	"github.com/deppfellow/shoe-rental/internal/discount"
	"github.com/deppfellow/shoe-rental/internal/lib/job"
	"github.com/deppfellow/shoe-rental/internal/repository"
	"github.com/deppfellow/shoe-rental/internal/server"
)

type Services struct {
	Customer *CustomerService
	Rental   *RentalService
	Job      *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	engine := discount.NewEngine(s.Oracle, s.Logger, s.Metrics)

	return &Services{
		Customer: NewCustomerService(repos.Customer, s.Job, s.Logger),
		Rental: NewRentalService(RentalServiceDeps{
			Customers: repos.Customer,
			Rentals:   repos.Rental,
			Discounts: engine,
			Receipts:  s.Job,
			Recorder:  s.Metrics,
			Policy:    s.Config.Pricing.FeePolicy,
			Logger:    s.Logger,
		}),
		Job: s.Job,
	}, nil
}
