package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type GetAppointment struct {
	repo     domain.Repository
	profiles role.Lookup
}

func NewGetAppointment(
	repo domain.Repository,
	profiles role.Lookup,
) *GetAppointment {
	return &GetAppointment{
		repo:     repo,
		profiles: profiles,
	}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	userID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	p, err := role.Resolve(ctx, uc.profiles, userID)
	if err != nil {
		return nil, err
	}

	return loadVisible(ctx, uc.repo, p, appointmentID)
}

// loadVisible hides appointments outside the caller's scope behind the same
// not-found answer as missing ones.
func loadVisible(
	ctx context.Context,
	repo domain.Repository,
	p *role.Principal,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if !p.AppointmentScope().Matches(ap) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	return ap, nil
}
