package email

// Template names an embedded HTML template under templates/.
type Template string

const (
	TemplateWelcome       Template = "welcome"
	TemplateRentalReceipt Template = "rental_receipt"
)

func (t Template) file() string {
	return string(t) + ".html"
}

// PreviewData holds sample variables for every template, keyed by template
// name. Templates must render with it.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"CustomerName": "Ada Lovelace",
	},
	TemplateRentalReceipt: {
		"CustomerName": "Ada Lovelace",
		"RentalID":     "42",
		"RentalDate":   "2024-05-01",
		"ShoeSize":     "38",
		"RentalFee":    "100.00",
		"Discount":     "15",
		"TotalFee":     "85.00",
	},
}
