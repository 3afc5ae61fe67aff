package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorConstructors(t *testing.T) {
	custom := "CUSTOMER_INVALID"

	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{"bad request", NewBadRequestError("bad", true, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"bad request with code", NewBadRequestError("bad", true, &custom, nil), http.StatusBadRequest, custom},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"too many requests", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestHTTPError_WithMessage(t *testing.T) {
	base := NewInternalServerError()
	derived := base.WithMessage("customer not found")

	assert.Equal(t, "customer not found", derived.Message)
	assert.Equal(t, base.Status, derived.Status)
	assert.Equal(t, "Internal Server Error", base.Message)
}

func TestHTTPError_Is(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("missing", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestNewWorkflowError(t *testing.T) {
	err := NewWorkflowError(fmt.Errorf("rental for customer 7: %w", ErrCustomerNotFound))

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "rental for customer 7: customer not found", err.Message)
}

func TestIsWorkflowError(t *testing.T) {
	assert.True(t, IsWorkflowError(ErrCustomerNotFound))
	assert.True(t, IsWorkflowError(fmt.Errorf("x: %w", ErrDiscountValidation)))
	assert.True(t, IsWorkflowError(fmt.Errorf("x: %w: %w", ErrStorage, errors.New("conn reset"))))
	assert.True(t, IsWorkflowError(ErrDiscountOracle))
	assert.False(t, IsWorkflowError(errors.New("other")))
	assert.False(t, IsWorkflowError(NewInternalServerError()))
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "OK", MakeUpperCaseWithUnderscores("ok"))
}
