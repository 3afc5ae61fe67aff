package errs

import "errors"

// Error kinds raised by the rental workflow.
//
// They are sentinel values wrapped with %w at the point of failure, so the
// message carries the detail while errors.Is still recognizes the kind after
// the error has crossed the service and handler boundaries.
var (
	// ErrCustomerNotFound is returned when a rental references a customer id
	// with no matching row.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrDiscountValidation is returned when the oracle replied with anything
	// other than a whole number between 0 and 100.
	ErrDiscountValidation = errors.New("the response from the discount oracle is not a valid discount percentage")

	// ErrDiscountOracle is returned when the oracle could not be reached or
	// returned no completion.
	ErrDiscountOracle = errors.New("discount oracle request failed")

	// ErrStorage is returned for any repository read or write failure.
	ErrStorage = errors.New("storage operation failed")
)

// IsWorkflowError reports whether err carries one of the rental workflow kinds.
func IsWorkflowError(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrDiscountValidation) ||
		errors.Is(err, ErrDiscountOracle) ||
		errors.Is(err, ErrStorage)
}
