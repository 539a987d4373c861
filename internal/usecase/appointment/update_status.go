package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type UpdateAppointmentStatus struct {
	repo     domain.Repository
	profiles role.Lookup
	audit    *audit.Dispatcher
	notifier Notifier
	now      func() time.Time
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	profiles role.Lookup,
	audit *audit.Dispatcher,
	notifier Notifier,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:     repo,
		profiles: profiles,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	userID uuid.UUID,
	appointmentID uuid.UUID,
	to domain.Status,
) (*models.Appointment, error) {

	p, err := role.Resolve(ctx, uc.profiles, userID)
	if err != nil {
		return nil, err
	}

	ap, err := loadVisible(ctx, uc.repo, p, appointmentID)
	if err != nil {
		return nil, err
	}

	// Clients may only withdraw their own requests; everything else is
	// artist-side.
	if p.Role == role.Client {
		if to != domain.StatusCancelled {
			return nil, httperr.ErrBusiness("forbidden")
		}
	} else if !p.CanManage(ap) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	from := ap.Status
	if err := domain.Transition(ap, to, uc.now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, ap, domain.Status(from)); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &userID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": from, "to": ap.Status},
	})

	if err := uc.notifier.AppointmentStatusChanged(ctx, ap, from); err != nil {
		log.Error().Err(err).
			Str("appointment_id", ap.ID.String()).
			Msg("status notification failed")
	}

	return ap, nil
}
