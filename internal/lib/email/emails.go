package email

import (
	"context"
	"fmt"
)

// SendWelcomeEmail greets a newly registered customer.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, customerName string) error {
	return c.SendEmail(ctx, to, "Welcome to Shoe Rental!", TemplateWelcome, map[string]string{
		"CustomerName": customerName,
	})
}

// RentalReceipt carries the already formatted values shown on a receipt.
type RentalReceipt struct {
	CustomerName string
	RentalID     int64
	RentalDate   string
	ShoeSize     int
	RentalFee    string
	Discount     int
	TotalFee     string
}

// SendRentalReceipt mails the priced rental to the customer.
func (c *Client) SendRentalReceipt(ctx context.Context, to string, receipt RentalReceipt) error {
	return c.SendEmail(ctx, to, fmt.Sprintf("Your shoe rental #%d", receipt.RentalID), TemplateRentalReceipt, receipt.templateData())
}

func (r RentalReceipt) templateData() map[string]string {
	return map[string]string{
		"CustomerName": r.CustomerName,
		"RentalID":     fmt.Sprintf("%d", r.RentalID),
		"RentalDate":   r.RentalDate,
		"ShoeSize":     fmt.Sprintf("%d", r.ShoeSize),
		"RentalFee":    r.RentalFee,
		"Discount":     fmt.Sprintf("%d", r.Discount),
		"TotalFee":     r.TotalFee,
	}
}
