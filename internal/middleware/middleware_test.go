package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/shoe-rental/internal/config"
	"github.com/deppfellow/shoe-rental/internal/errs"
	"github.com/deppfellow/shoe-rental/internal/logger"
	"github.com/deppfellow/shoe-rental/internal/server"
)

func newTestServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{
				RateLimit: config.RateLimitConfig{
					GlobalRPS:     100,
					GlobalBurst:   100,
					RentalsRPS:    0.001,
					RentalsBurst:  1,
					ExpiresInSecs: 60,
				},
			},
		},
		Logger: &log,
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("reuses the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestContextEnhancer_StoresLoggerInRequestContext(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	s := newTestServer()
	s.Logger = &base

	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	e.GET("/customers", func(c echo.Context) error {
		logger.FromContext(c.Request().Context(), nil).Info().Msg("from service layer")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	e.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-42", line["request_id"])
	assert.Equal(t, "/customers", line["path"])
	assert.Equal(t, "from service layer", line["message"])
}

func TestRateLimit_Rentals(t *testing.T) {
	s := newTestServer()
	limits := NewRateLimitMiddleware(s)
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.POST("/rentals", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, limits.Rentals())

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/rentals", nil))
	assert.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/rentals", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, "TOO_MANY_REQUESTS", body.Code)
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "http error passes through",
			err:         errs.NewBadRequestError("Validation failed", true, nil, nil),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation failed",
		},
		{
			name:        "workflow error keeps its message",
			err:         fmt.Errorf("customer 9: %w", errs.ErrCustomerNotFound),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "customer 9: customer not found",
		},
		{
			name:        "unknown route",
			err:         echo.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Route not found",
		},
		{
			name:        "method not allowed",
			err:         echo.ErrMethodNotAllowed,
			wantStatus:  http.StatusMethodNotAllowed,
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "postgres check violation",
			err:         &pgconn.PgError{Code: "23514", TableName: "customers", ColumnName: "age"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "The Age value does not meet required conditions",
		},
		{
			name:        "anything else is hidden",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal Server Error",
		},
	}

	global := NewGlobalMiddlewares(newTestServer())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errs.HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}
