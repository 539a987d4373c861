package appointment

import (
	"context"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// Notifier delivers appointment notifications. Implementations may fail;
// callers log the error and carry on.
type Notifier interface {
	AppointmentBooked(ctx context.Context, ap *models.Appointment) error
	AppointmentStatusChanged(ctx context.Context, ap *models.Appointment, from string) error
}

// Checkout is a hosted payment page for an appointment deposit.
type Checkout struct {
	PreferenceID string
	URL          string
}

type PaymentGateway interface {
	CreateDepositCheckout(ctx context.Context, ap *models.Appointment) (*Checkout, error)
}
