package model

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/shoe-rental/internal/validation"
)

// Rental is a row of the customer_rentals table.
//
// RentalDate is a pgtype.Date so it round-trips the DATE column and
// marshals to JSON as "YYYY-MM-DD".
type Rental struct {
	ID         int64           `json:"id" db:"id"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	CustomerID int64           `json:"customer_id" db:"customer_id"`
	RentalDate pgtype.Date     `json:"rental_date" db:"rental_date"`
	ShoeSize   int             `json:"shoe_size" db:"shoe_size"`
	RentalFee  decimal.Decimal `json:"rental_fee" db:"rental_fee"`
	Discount   int             `json:"discount" db:"discount"`
	TotalFee   decimal.Decimal `json:"total_fee" db:"total_fee"`
}

// RentalColumns lists the columns read back for a Rental.
var RentalColumns = []string{
	"id",
	"created_at",
	"customer_id",
	"rental_date",
	"shoe_size",
	"rental_fee",
	"discount",
	"total_fee",
}

// NewRental is the record inserted by the rental workflow, before the
// database assigns id and created_at.
type NewRental struct {
	CustomerID int64
	RentalDate time.Time
	ShoeSize   int
	RentalFee  decimal.Decimal
	Discount   int
	TotalFee   decimal.Decimal
}

// CreateRentalPayload is the body of POST /api/v1/customer/rentals/.
type CreateRentalPayload struct {
	CustomerID int64            `json:"customer_id" validate:"required,min=1"`
	ShoeSize   int              `json:"shoe_size" validate:"required,min=1,max=60"`
	RentalFee  *decimal.Decimal `json:"rental_fee" validate:"required"`
}

func (p *CreateRentalPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	// decimal.Decimal is opaque to struct tags, so the fee is checked here.
	fee := *p.RentalFee
	if fee.IsNegative() {
		return validation.CustomValidationErrors{
			{Field: "rental_fee", Message: "must be at least 0"},
		}
	}
	if fee.Exponent() < -2 && !fee.Equal(fee.Round(2)) {
		return validation.CustomValidationErrors{
			{Field: "rental_fee", Message: "must have at most 2 decimal places"},
		}
	}
	return nil
}

// ListRentalsPayload is the input of GET /api/v1/customer/rentals/.
// A zero CustomerID lists every rental.
type ListRentalsPayload struct {
	CustomerID int64 `query:"customer_id" validate:"omitempty,min=1"`
}

func (p *ListRentalsPayload) Validate() error {
	return validate.Struct(p)
}
