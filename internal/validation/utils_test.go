package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/shoe-rental/internal/errs"
)

type contact struct {
	EmailAddress string `json:"email_address" validate:"required,email"`
}

type signupPayload struct {
	Name        string    `json:"name" validate:"required"`
	ShoeSize    int       `json:"shoe_size" validate:"min=1"`
	ContactInfo []contact `json:"contact_info" validate:"required,min=1,dive"`
}

func (p *signupPayload) Validate() error {
	return validator.New().Struct(p)
}

type customRulePayload struct {
	Fee int `json:"fee"`
}

func (p *customRulePayload) Validate() error {
	if p.Fee < 0 {
		return CustomValidationErrors{{Field: "fee", Message: "must be at least 0"}}
	}
	return nil
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload := &signupPayload{}
		err := BindAndValidate(newContext(`{"name":"Ann","shoe_size":9,"contact_info":[{"email_address":"ann@example.com"}]}`), payload)

		require.NoError(t, err)
		assert.Equal(t, "Ann", payload.Name)
		assert.Equal(t, 9, payload.ShoeSize)
	})

	t.Run("field errors use json names", func(t *testing.T) {
		err := BindAndValidate(newContext(`{"shoe_size":0,"contact_info":[{"email_address":"nope"}]}`), &signupPayload{})

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Contains(t, httpErr.Errors, errs.FieldError{Field: "name", Error: "is required"})
		assert.Contains(t, httpErr.Errors, errs.FieldError{Field: "shoe_size", Error: "must be at least 1"})
		assert.Contains(t, httpErr.Errors, errs.FieldError{Field: "contact_info[0].email_address", Error: "must be a valid email address"})
	})

	t.Run("custom validation errors", func(t *testing.T) {
		err := BindAndValidate(newContext(`{"fee":-1}`), &customRulePayload{})

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, []errs.FieldError{{Field: "fee", Error: "must be at least 0"}}, httpErr.Errors)
	})

	t.Run("malformed json", func(t *testing.T) {
		err := BindAndValidate(newContext(`{"name":`), &signupPayload{})

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.NotEmpty(t, httpErr.Message)
	})
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"CustomerID":   "customer_id",
		"EmailAddress": "email_address",
		"RentalFee":    "rental_fee",
		"ID":           "id",
		"Name":         "name",
	}
	for in, want := range cases {
		assert.Equal(t, want, toSnakeCase(in), in)
	}
}
