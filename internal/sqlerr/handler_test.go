package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/shoe-rental/internal/errs"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("42P01"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("bogus"))
}

func TestErrCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514"}

	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("insert: %w", pgErr)))
	assert.Equal(t, UniqueViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23505"})))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestHandleError(t *testing.T) {
	t.Run("check violation on customers.age", func(t *testing.T) {
		err := fmt.Errorf("insert into customers: %w: %w", errs.ErrStorage, &pgconn.PgError{
			Code:           "23514",
			Severity:       "ERROR",
			TableName:      "customers",
			ConstraintName: "customers_age_check",
		})

		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(err), &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "CUSTOMER_INVALID", httpErr.Code)
		assert.Equal(t, "The Age value does not meet required conditions", httpErr.Message)
	})

	t.Run("foreign key violation names the referenced entity", func(t *testing.T) {
		err := &pgconn.PgError{
			Code:       "23503",
			TableName:  "customer_rentals",
			ColumnName: "customer_id",
		}

		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(err), &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "The referenced Customer does not exist", httpErr.Message)
	})

	t.Run("not null violation carries a field error", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23502", TableName: "customers", ColumnName: "name"}

		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(err), &httpErr))
		assert.Equal(t, "The Name is required", httpErr.Message)
		assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, httpErr.Errors)
	})

	t.Run("unique violation infers the column", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", TableName: "customers", ConstraintName: "customers_name_key"}

		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(err), &httpErr))
		assert.Equal(t, "A Customer with this Name already exists", httpErr.Message)
	})

	t.Run("no rows is a 404", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(pgx.ErrNoRows), &httpErr))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("existing http errors pass through", func(t *testing.T) {
		in := errs.NewNotFoundError("gone", true, nil)
		assert.Same(t, in, HandleError(in))
	})

	t.Run("unknown errors hide their detail", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(errors.New("connection reset by peer")), &httpErr))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "Internal Server Error", httpErr.Message)
	})
}
