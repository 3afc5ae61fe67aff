package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/deppfellow/shoe-rental/internal/errs"
	"github.com/deppfellow/shoe-rental/internal/model"
)

const rentalsTable = "customer_rentals"

type RentalRepository struct {
	db Querier
}

func NewRentalRepository(db Querier) *RentalRepository {
	return &RentalRepository{db: db}
}

// Create inserts a rental and returns the stored row.
func (r *RentalRepository) Create(ctx context.Context, rental model.NewRental) (*model.Rental, error) {
	rows, err := insert[model.Rental](ctx, r.db, rentalsTable, Record{
		"customer_id": rental.CustomerID,
		"rental_date": pgtype.Date{Time: rental.RentalDate, Valid: true},
		"shoe_size":   rental.ShoeSize,
		"rental_fee":  rental.RentalFee,
		"discount":    rental.Discount,
		"total_fee":   rental.TotalFee,
	}, model.RentalColumns)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s returned no row: %w", rentalsTable, errs.ErrStorage)
	}

	return &rows[0], nil
}

// List returns every rental ordered by id.
func (r *RentalRepository) List(ctx context.Context) ([]model.Rental, error) {
	return retrieve[model.Rental](ctx, r.db, rentalsTable, model.RentalColumns, nil)
}

// ListByCustomer returns the rentals of one customer ordered by id.
func (r *RentalRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Rental, error) {
	return retrieve[model.Rental](ctx, r.db, rentalsTable, model.RentalColumns, Filters{"customer_id": customerID})
}
