package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Returning an error from a handler makes Asynq retry the task;
// wrapping asynq.SkipRetry drops it.

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().Str("type", TaskWelcome).Str("to", p.To).Logger()
	log.Info().Msg("processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(ctx, p.To, p.CustomerName); err != nil {
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("sent welcome email")
	return nil
}

func (j *JobService) handleRentalReceiptTask(ctx context.Context, t *asynq.Task) error {
	var p RentalReceiptPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal rental receipt payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskRentalReceipt).
		Str("to", p.To).
		Int64("rental_id", p.Receipt.RentalID).
		Logger()
	log.Info().Msg("processing rental receipt task")

	if err := j.mailer.SendRentalReceipt(ctx, p.To, p.Receipt); err != nil {
		log.Error().Err(err).Msg("failed to send rental receipt")
		return err
	}

	log.Info().Msg("sent rental receipt")
	return nil
}
