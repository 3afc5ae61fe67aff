// Package handler is the HTTP layer: it binds and validates requests with
// the validation package, calls the service layer, and writes responses.
package handler
