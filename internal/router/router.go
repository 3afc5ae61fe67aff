// Package router builds the Echo instance: middleware chain, API routes
// and system routes.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/shoe-rental/internal/handler"
	"github.com/deppfellow/shoe-rental/internal/middleware"
	"github.com/deppfellow/shoe-rental/internal/model"
	"github.com/deppfellow/shoe-rental/internal/server"
)

// NewRouter wires middleware in request order: rate limiting first so
// rejected clients cost nothing, then the request id and tracing that
// every later log line depends on.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Global(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.BodyLimit(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)

	v1 := router.Group("/api/v1")
	registerCustomerRoutes(v1, h)
	registerRentalRoutes(v1, h, middlewares)

	return router
}

func registerCustomerRoutes(g *echo.Group, h *handler.Handlers) {
	ch := h.Customer

	g.POST("/customers", handler.Handle(ch.Handler, ch.CreateCustomer, http.StatusCreated, &model.CreateCustomerPayload{}))
	g.GET("/customers", handler.Handle(ch.Handler, ch.ListCustomers, http.StatusOK, &model.ListCustomersPayload{}))
}

// Rental creation calls the oracle, so it carries its own tighter limit.
func registerRentalRoutes(g *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	rh := h.Rental

	g.POST("/customer/rentals/", handler.Handle(rh.Handler, rh.CreateRental, http.StatusCreated, &model.CreateRentalPayload{}), m.RateLimit.Rentals())
	g.GET("/customer/rentals/", handler.Handle(rh.Handler, rh.ListRentals, http.StatusOK, &model.ListRentalsPayload{}))
}
