package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/validators"
)

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	profiles role.Lookup
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewCreateAppointment(
	repo domain.Repository,
	profiles role.Lookup,
	audit *audit.Dispatcher,
	notifier Notifier,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		profiles: profiles,
		audit:    audit,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	userID uuid.UUID,
	in validators.BookingRequest,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Caller must be a client with a client record
	// --------------------------------------------------
	p, err := role.Resolve(ctx, uc.profiles, userID)
	if err != nil {
		return nil, err
	}
	if err := p.Require(role.Client); err != nil {
		return nil, err
	}
	if p.Client == nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	// --------------------------------------------------
	// 2. Artist must exist and accept bookings
	// --------------------------------------------------
	artist, err := uc.repo.GetArtist(ctx, in.ArtistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("artist_not_found")
		}
		return nil, err
	}
	if !artist.AcceptsBookings() {
		return nil, httperr.ErrBusiness("artist_inactive")
	}

	// --------------------------------------------------
	// 3. Atomic conflict check + insert
	// --------------------------------------------------
	slot := domain.NewInterval(in.Start, in.DurationMinutes)

	ap := &models.Appointment{
		ClientID:        p.Client.ID,
		ArtistID:        artist.ID,
		StartTime:       slot.Start,
		DurationMinutes: in.DurationMinutes,
		EndTime:         slot.End,
		Status:          string(domain.InitialStatus()),
		TattooStyle:     in.TattooStyle,
		Description:     in.Description,
		Notes:           in.Notes,
		ReferenceImages: append([]string{}, in.ReferenceImages...),
		EstimatedPrice:  in.EstimatedPrice,
		Deposit:         in.Deposit,
	}

	if err := uc.repo.CreateIfSlotFree(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(audit.Event{
				ActorID:  &userID,
				Action:   "appointment_conflict",
				Entity:   "artist",
				EntityID: &artist.ID,
				Metadata: slot,
			})
		}
		return nil, err
	}

	ap.Artist = *artist
	ap.Client = *p.Client

	// --------------------------------------------------
	// 4. Audit + best-effort notification
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorID:  &userID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	if err := uc.notifier.AppointmentBooked(ctx, ap); err != nil {
		log.Error().Err(err).
			Str("appointment_id", ap.ID.String()).
			Msg("booking notification failed")
	}

	return ap, nil
}
