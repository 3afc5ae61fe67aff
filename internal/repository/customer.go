package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/shoe-rental/internal/errs"
	"github.com/deppfellow/shoe-rental/internal/model"
)

const customersTable = "customers"

type CustomerRepository struct {
	db Querier
}

func NewCustomerRepository(db Querier) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a customer. A nil condition list is stored as an empty array.
func (r *CustomerRepository) Create(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	conditions := customer.MedicalConditions
	if conditions == nil {
		conditions = []string{}
	}

	rows, err := insert[model.Customer](ctx, r.db, customersTable, Record{
		"name":               customer.Name,
		"age":                customer.Age,
		"contact_info":       customer.ContactInfo,
		"is_disabled":        customer.IsDisabled,
		"medical_conditions": conditions,
	}, model.CustomerColumns)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s returned no row: %w", customersTable, errs.ErrStorage)
	}

	return &rows[0], nil
}

// List returns every customer ordered by id.
func (r *CustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	return retrieve[model.Customer](ctx, r.db, customersTable, model.CustomerColumns, nil)
}

// FindByID returns errs.ErrCustomerNotFound when no row has the given id.
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	rows, err := retrieve[model.Customer](ctx, r.db, customersTable, model.CustomerColumns, Filters{"id": id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("customer %d: %w", id, errs.ErrCustomerNotFound)
	}

	return &rows[0], nil
}
