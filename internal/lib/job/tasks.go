package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/shoe-rental/internal/lib/email"
)

const (
	TaskWelcome       = "email:welcome"
	TaskRentalReceipt = "email:rental_receipt"
)

type WelcomeEmailPayload struct {
	To           string `json:"to"`
	CustomerName string `json:"customer_name"`
}

type RentalReceiptPayload struct {
	To      string              `json:"to"`
	Receipt email.RentalReceipt `json:"receipt"`
}

func NewWelcomeEmailTask(to, customerName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:           to,
		CustomerName: customerName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewRentalReceiptTask goes to the critical queue: customers wait for it at
// the counter.
func NewRentalReceiptTask(to string, receipt email.RentalReceipt) (*asynq.Task, error) {
	payload, err := json.Marshal(RentalReceiptPayload{
		To:      to,
		Receipt: receipt,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskRentalReceipt,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
