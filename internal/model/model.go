// Package model defines the records the service stores and the request
// payloads its handlers accept.
//
// Record types carry `db` tags so repositories can collect query results
// with pgx.RowToStructByName, and `json` tags for the HTTP layer.
package model

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validate is shared by every payload; validator caches struct metadata.
var validate = validator.New()

func init() {
	// Fees travel as JSON numbers, matching how clients send them.
	decimal.MarshalJSONWithoutQuotes = true
}
