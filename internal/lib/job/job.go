// Package job runs background work on Asynq, a Redis-backed task queue.
//
// The HTTP path only enqueues; a worker server in the same process sends
// the emails.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/shoe-rental/internal/config"
	"github.com/deppfellow/shoe-rental/internal/lib/email"
)

// Mailer delivers the emails the job handlers are responsible for.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, to, customerName string) error
	SendRentalReceipt(ctx context.Context, to string, receipt email.RentalReceipt) error
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type JobService struct {
	client enqueuer
	server *asynq.Server
	mailer Mailer
	logger *zerolog.Logger
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config, mailer Mailer) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   asynqLogger{logger: logger},
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		client: asynq.NewClient(redisOpt),
		server: server,
		mailer: mailer,
		logger: logger,
	}
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskRentalReceipt, j.handleRentalReceiptTask)
	return mux
}

// Start launches the worker pool in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.mux()); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}
	return nil
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}

// EnqueueWelcomeEmail schedules the welcome email for a new customer.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, customerName string) error {
	task, err := NewWelcomeEmailTask(to, customerName)
	if err != nil {
		return fmt.Errorf("build %s task: %w", TaskWelcome, err)
	}
	return j.enqueue(ctx, task)
}

// EnqueueRentalReceipt schedules the receipt for a persisted rental.
func (j *JobService) EnqueueRentalReceipt(ctx context.Context, to string, receipt email.RentalReceipt) error {
	task, err := NewRentalReceiptTask(to, receipt)
	if err != nil {
		return fmt.Errorf("build %s task: %w", TaskRentalReceipt, err)
	}
	return j.enqueue(ctx, task)
}

func (j *JobService) enqueue(ctx context.Context, task *asynq.Task) error {
	info, err := j.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}

	j.logger.Debug().
		Str("task", task.Type()).
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("task enqueued")
	return nil
}

// asynqLogger routes Asynq's internal logs into zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
