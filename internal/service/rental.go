package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/shoe-rental/internal/config"
	"github.com/deppfellow/shoe-rental/internal/discount"
	"github.com/deppfellow/shoe-rental/internal/lib/email"
	"github.com/deppfellow/shoe-rental/internal/logger"
	"github.com/deppfellow/shoe-rental/internal/model"
)

type CustomerFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
}

type RentalStore interface {
	Create(ctx context.Context, rental model.NewRental) (*model.Rental, error)
	List(ctx context.Context) ([]model.Rental, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Rental, error)
}

type DiscountCalculator interface {
	Calculate(ctx context.Context, eligibility discount.Eligibility) (int, error)
}

type ReceiptEnqueuer interface {
	EnqueueRentalReceipt(ctx context.Context, to string, receipt email.RentalReceipt) error
}

type RentalRecorder interface {
	RentalCreated()
}

type RentalService struct {
	customers CustomerFinder
	rentals   RentalStore
	discounts DiscountCalculator
	receipts  ReceiptEnqueuer
	recorder  RentalRecorder
	policy    config.FeePolicy
	now       func() time.Time
	logger    *zerolog.Logger
}

type RentalServiceDeps struct {
	Customers CustomerFinder
	Rentals   RentalStore
	Discounts DiscountCalculator
	Receipts  ReceiptEnqueuer
	Recorder  RentalRecorder
	Policy    config.FeePolicy
	Now       func() time.Time
	Logger    *zerolog.Logger
}

func NewRentalService(deps RentalServiceDeps) *RentalService {
	s := &RentalService{
		customers: deps.Customers,
		rentals:   deps.Rentals,
		discounts: deps.Discounts,
		receipts:  deps.Receipts,
		recorder:  deps.Recorder,
		policy:    deps.Policy,
		now:       deps.Now,
		logger:    deps.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.policy == "" {
		s.policy = config.FeePolicyFlat
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}
	return s
}

type noopRecorder struct{}

func (noopRecorder) RentalCreated() {}

// Create prices and records a rental.
//
// Steps run in order and stop at the first failure, so the oracle is never
// called for an unknown customer and nothing is stored unless a discount was
// accepted. Errors are returned with their kind intact (see package errs).
func (s *RentalService) Create(ctx context.Context, payload *model.CreateRentalPayload) (*model.Rental, error) {
	log := logger.FromContext(ctx, s.logger).With().
		Int64("customer_id", payload.CustomerID).
		Logger()

	customer, err := s.customers.FindByID(ctx, payload.CustomerID)
	if err != nil {
		log.Error().Err(err).Msg("customer lookup failed")
		return nil, err
	}

	pct, err := s.discounts.Calculate(ctx, discount.Eligibility{
		Age:               customer.Age,
		IsDisabled:        customer.IsDisabled,
		MedicalConditions: customer.MedicalConditions,
	})
	if err != nil {
		log.Error().Err(err).Msg("discount calculation failed")
		return nil, err
	}

	fee := *payload.RentalFee
	total := ComputeTotalFee(s.policy, fee, pct)

	rental, err := s.rentals.Create(ctx, model.NewRental{
		CustomerID: customer.ID,
		RentalDate: s.today(),
		ShoeSize:   payload.ShoeSize,
		RentalFee:  fee,
		Discount:   pct,
		TotalFee:   total,
	})
	if err != nil {
		log.Error().Err(err).Int("discount", pct).Msg("failed to store rental, discount discarded")
		return nil, err
	}

	s.recorder.RentalCreated()
	log.Info().
		Int64("rental_id", rental.ID).
		Int("discount", pct).
		Str("total_fee", total.StringFixed(2)).
		Msg("rental created")

	s.sendReceipt(ctx, &log, customer, rental)

	return rental, nil
}

func (s *RentalService) sendReceipt(ctx context.Context, log *zerolog.Logger, customer *model.Customer, rental *model.Rental) {
	to := customer.PrimaryEmail()
	if to == "" {
		return
	}

	err := s.receipts.EnqueueRentalReceipt(ctx, to, email.RentalReceipt{
		CustomerName: customer.Name,
		RentalID:     rental.ID,
		RentalDate:   rental.RentalDate.Time.Format(time.DateOnly),
		ShoeSize:     rental.ShoeSize,
		RentalFee:    rental.RentalFee.StringFixed(2),
		Discount:     rental.Discount,
		TotalFee:     rental.TotalFee.StringFixed(2),
	})
	if err != nil {
		log.Warn().Err(err).Int64("rental_id", rental.ID).Msg("failed to enqueue rental receipt")
	}
}

// List returns every rental, or only those of customerID when it is set.
func (s *RentalService) List(ctx context.Context, customerID int64) ([]model.Rental, error) {
	var (
		rentals []model.Rental
		err     error
	)
	if customerID > 0 {
		rentals, err = s.rentals.ListByCustomer(ctx, customerID)
	} else {
		rentals, err = s.rentals.List(ctx)
	}
	if err != nil {
		logger.FromContext(ctx, s.logger).Error().Err(err).Msg("failed to list rentals")
		return nil, err
	}
	return rentals, nil
}

// today is the current calendar date, at midnight UTC.
func (s *RentalService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeTotalFee applies a discount to fee, rounded half away from zero to
// two decimal places.
//
// FeePolicyFlat subtracts the discount as an amount (50.00 - 10 = 40.00) and
// may go negative for small fees. FeePolicyPercentage reduces the fee by
// that many percent (50.00 - 10% = 45.00).
func ComputeTotalFee(policy config.FeePolicy, fee decimal.Decimal, pct int) decimal.Decimal {
	d := decimal.NewFromInt(int64(pct))

	switch policy {
	case config.FeePolicyPercentage:
		factor := decimal.NewFromInt(100).Sub(d).Div(decimal.NewFromInt(100))
		return fee.Mul(factor).Round(2)
	default:
		return fee.Sub(d).Round(2)
	}
}
