package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/shoe-rental/internal/logger"
	"github.com/deppfellow/shoe-rental/internal/model"
)

type CustomerStore interface {
	Create(ctx context.Context, customer model.Customer) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
}

type WelcomeEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, customerName string) error
}

type CustomerService struct {
	customers CustomerStore
	welcome   WelcomeEnqueuer
	logger    *zerolog.Logger
}

func NewCustomerService(customers CustomerStore, welcome WelcomeEnqueuer, logger *zerolog.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		welcome:   welcome,
		logger:    logger,
	}
}

// Create registers a customer and schedules the welcome email. A failed
// enqueue is logged and does not fail the registration.
func (s *CustomerService) Create(ctx context.Context, payload *model.CreateCustomerPayload) (*model.Customer, error) {
	log := logger.FromContext(ctx, s.logger)

	customer, err := s.customers.Create(ctx, model.Customer{
		Name:              payload.Name,
		Age:               *payload.Age,
		ContactInfo:       payload.ContactInfo,
		IsDisabled:        *payload.IsDisabled,
		MedicalConditions: payload.NormalizedConditions(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create customer")
		return nil, err
	}

	log.Info().Int64("customer_id", customer.ID).Msg("customer created")

	if to := customer.PrimaryEmail(); to != "" {
		if err := s.welcome.EnqueueWelcomeEmail(ctx, to, customer.Name); err != nil {
			log.Warn().Err(err).Int64("customer_id", customer.ID).Msg("failed to enqueue welcome email")
		}
	}

	return customer, nil
}

func (s *CustomerService) List(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		logger.FromContext(ctx, s.logger).Error().Err(err).Msg("failed to list customers")
		return nil, err
	}
	return customers, nil
}
