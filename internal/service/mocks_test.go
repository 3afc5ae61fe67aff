package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/deppfellow/shoe-rental/internal/discount"
	"github.com/deppfellow/shoe-rental/internal/lib/email"
	"github.com/deppfellow/shoe-rental/internal/model"
)

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	args := m.Called(ctx, customer)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *mockCustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]model.Customer)
	return c, args.Error(1)
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

type mockRentalRepo struct {
	mock.Mock
}

func (m *mockRentalRepo) Create(ctx context.Context, rental model.NewRental) (*model.Rental, error) {
	args := m.Called(ctx, rental)
	if fn, ok := args.Get(0).(func(context.Context, model.NewRental) *model.Rental); ok {
		return fn(ctx, rental), args.Error(1)
	}
	r, _ := args.Get(0).(*model.Rental)
	return r, args.Error(1)
}

func (m *mockRentalRepo) List(ctx context.Context) ([]model.Rental, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]model.Rental)
	return r, args.Error(1)
}

func (m *mockRentalRepo) ListByCustomer(ctx context.Context, customerID int64) ([]model.Rental, error) {
	args := m.Called(ctx, customerID)
	r, _ := args.Get(0).([]model.Rental)
	return r, args.Error(1)
}

type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) Complete(ctx context.Context, systemInstruction, userText string) (string, error) {
	args := m.Called(ctx, systemInstruction, userText)
	return args.String(0), args.Error(1)
}

type mockDiscounts struct {
	mock.Mock
}

func (m *mockDiscounts) Calculate(ctx context.Context, eligibility discount.Eligibility) (int, error) {
	args := m.Called(ctx, eligibility)
	return args.Int(0), args.Error(1)
}

type mockJobs struct {
	mock.Mock
}

func (m *mockJobs) EnqueueWelcomeEmail(ctx context.Context, to, customerName string) error {
	return m.Called(ctx, to, customerName).Error(0)
}

func (m *mockJobs) EnqueueRentalReceipt(ctx context.Context, to string, receipt email.RentalReceipt) error {
	return m.Called(ctx, to, receipt).Error(0)
}

type countingRecorder struct {
	created int
}

func (c *countingRecorder) RentalCreated() { c.created++ }
