package discount

import (
	"fmt"
	"strings"
)

// systemInstruction is the fixed rule set the oracle is asked to apply.
const systemInstruction = `You are a discount calculator for a service. Determine the highest applicable discount based on the following criteria:

Age Discounts:
- 0-12 years: 20% discount
- 13-18 years: 10% discount
- 65 years and above: 15% discount

Disability Discount:
- Disabled: 25% discount

Pre-existing Medical Conditions Discounts:
- Diabetes: 10% discount
- Hypertension: 10% discount
- Chronic Condition: 10% discount

Input: the customer's age, disability status, and any pre-existing medical conditions.

Note: If the customer qualifies for multiple discounts, return the highest discount value. Discounts are never added together.

Examples:
1. Input: The customer is 68 years old. Not Disabled. Medical conditions: diabetes.
   Output: 15

2. Input: The customer is 20 years old. Disabled. Medical conditions: Diabetes, Hypertension.
   Output: 25

Return only the numerical value, without any additional text or explanation.`

// SystemInstruction returns the rule-set prompt sent with every oracle request.
func SystemInstruction() string {
	return systemInstruction
}

// Eligibility is the subset of a customer record the rule table looks at.
type Eligibility struct {
	Age               int
	IsDisabled        bool
	MedicalConditions []string
}

// Summary renders eligibility facts as the natural-language input the oracle expects:
//
//	The customer is 70 years old. Not Disabled. Medical conditions: diabetes.
//
// An empty condition list is written as "None".
func Summary(e Eligibility) string {
	conditions := "None"
	if len(e.MedicalConditions) > 0 {
		conditions = strings.Join(e.MedicalConditions, ", ")
	}

	disability := "Not Disabled"
	if e.IsDisabled {
		disability = "Disabled"
	}

	return fmt.Sprintf("The customer is %d years old. %s. Medical conditions: %s.", e.Age, disability, conditions)
}
