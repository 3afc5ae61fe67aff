package model

import (
	"strings"
	"time"
)

// ContactInfo is one way of reaching a customer.
type ContactInfo struct {
	ContactNumber string `json:"contact_number" validate:"required"`
	EmailAddress  string `json:"email_address" validate:"required,email"`
	Address       string `json:"address" validate:"required"`
}

// Customer is a row of the customers table.
type Customer struct {
	ID                int64         `json:"id" db:"id"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	Name              string        `json:"name" db:"name"`
	Age               int           `json:"age" db:"age"`
	ContactInfo       []ContactInfo `json:"contact_info" db:"contact_info"`
	IsDisabled        bool          `json:"is_disabled" db:"is_disabled"`
	MedicalConditions []string      `json:"medical_conditions" db:"medical_conditions"`
}

// CustomerColumns lists the columns read back for a Customer.
var CustomerColumns = []string{
	"id",
	"created_at",
	"name",
	"age",
	"contact_info",
	"is_disabled",
	"medical_conditions",
}

// PrimaryEmail returns the first non-empty email address on file.
func (c Customer) PrimaryEmail() string {
	for _, info := range c.ContactInfo {
		if email := strings.TrimSpace(info.EmailAddress); email != "" {
			return email
		}
	}
	return ""
}

// CreateCustomerPayload is the body of POST /api/v1/customers.
//
// Age and IsDisabled are pointers so that a missing field is told apart
// from a legitimate zero value (a newborn, a customer without disability).
type CreateCustomerPayload struct {
	Name              string        `json:"name" validate:"required,max=255"`
	Age               *int          `json:"age" validate:"required,min=0,max=150"`
	ContactInfo       []ContactInfo `json:"contact_info" validate:"required,min=1,dive"`
	IsDisabled        *bool         `json:"is_disabled" validate:"required"`
	MedicalConditions []string      `json:"medical_conditions" validate:"omitempty,dive,required"`
}

func (p *CreateCustomerPayload) Validate() error {
	return validate.Struct(p)
}

// NormalizedConditions trims each condition and drops blanks and duplicates.
// Medical conditions are a set, so order carries no meaning.
func (p *CreateCustomerPayload) NormalizedConditions() []string {
	if len(p.MedicalConditions) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(p.MedicalConditions))
	conditions := make([]string, 0, len(p.MedicalConditions))
	for _, condition := range p.MedicalConditions {
		condition = strings.TrimSpace(condition)
		key := strings.ToLower(condition)
		if condition == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		conditions = append(conditions, condition)
	}
	if len(conditions) == 0 {
		return nil
	}
	return conditions
}

// ListCustomersPayload is the (empty) input of GET /api/v1/customers.
type ListCustomersPayload struct{}

func (p *ListCustomersPayload) Validate() error {
	return nil
}
