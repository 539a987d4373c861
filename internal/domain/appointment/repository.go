package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type ListFilter struct {
	Scope  role.Scope
	From   *time.Time
	To     *time.Time
	Status *Status
	Limit  int
	Offset int
}

type Repository interface {
	// -------- Artist --------
	GetArtist(
		ctx context.Context,
		artistID uuid.UUID,
	) (*models.Artist, error)

	// -------- Appointment (create / conflict) --------

	// CreateIfSlotFree checks for a blocking overlap and inserts ap as one
	// atomic step per artist. It returns time_conflict when the slot is taken.
	CreateIfSlotFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, int64, error)

	ListBusyIntervals(
		ctx context.Context,
		artistID uuid.UUID,
		from time.Time,
		to time.Time,
	) ([]Interval, error)

	// -------- Appointment (state change) --------

	// UpdateStatus writes ap's status and lifecycle timestamps only while the
	// stored status is still from. A lost race returns invalid_state.
	UpdateStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	// SetDepositPaymentID records the checkout reference while the
	// appointment is PENDING or CONFIRMED, and returns invalid_state otherwise.
	SetDepositPaymentID(
		ctx context.Context,
		appointmentID uuid.UUID,
		paymentID string,
	) error
}
