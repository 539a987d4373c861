package notification

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Publisher hands notifications to the queue. Delivery and retries happen in
// the worker process.
type Publisher struct {
	queue Enqueuer
}

func NewPublisher(queue Enqueuer) *Publisher {
	return &Publisher{queue: queue}
}

func (p *Publisher) AppointmentBooked(ctx context.Context, ap *models.Appointment) error {
	return p.enqueue(ctx, TypeAppointmentBooked, NewAppointmentPayload(ap))
}

func (p *Publisher) AppointmentStatusChanged(ctx context.Context, ap *models.Appointment, from string) error {
	payload := NewAppointmentPayload(ap)
	payload.PreviousStatus = from
	return p.enqueue(ctx, TypeAppointmentStatus, payload)
}

func (p *Publisher) enqueue(ctx context.Context, taskType string, payload AppointmentPayload) error {
	b, err := payload.Marshal()
	if err != nil {
		return fmt.Errorf("marshal %s: %w", taskType, err)
	}

	info, err := p.queue.EnqueueContext(ctx,
		asynq.NewTask(taskType, b),
		asynq.Queue(Queue),
		asynq.MaxRetry(MaxRetries),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	log.Debug().
		Str("task_id", info.ID).
		Str("type", taskType).
		Str("appointment_id", payload.AppointmentID.String()).
		Msg("notification enqueued")
	return nil
}

// Discard is used when no queue is configured.
type Discard struct{}

func (Discard) AppointmentBooked(ctx context.Context, ap *models.Appointment) error {
	return nil
}

func (Discard) AppointmentStatusChanged(ctx context.Context, ap *models.Appointment, from string) error {
	return nil
}
