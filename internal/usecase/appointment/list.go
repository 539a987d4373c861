package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

type ListAppointmentsInput struct {
	From   *time.Time
	To     *time.Time
	Status *domain.Status
	Page   int
	Limit  int
}

type ListAppointmentsOutput struct {
	Items []models.Appointment
	Total int64
	Page  int
	Limit int
}

type ListAppointments struct {
	repo     domain.Repository
	profiles role.Lookup
}

func NewListAppointments(
	repo domain.Repository,
	profiles role.Lookup,
) *ListAppointments {
	return &ListAppointments{
		repo:     repo,
		profiles: profiles,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	userID uuid.UUID,
	in ListAppointmentsInput,
) (*ListAppointmentsOutput, error) {

	p, err := role.Resolve(ctx, uc.profiles, userID)
	if err != nil {
		return nil, err
	}

	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := uc.repo.ListAppointments(ctx, domain.ListFilter{
		Scope:  p.AppointmentScope(),
		From:   in.From,
		To:     in.To,
		Status: in.Status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListAppointmentsOutput{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	return page, limit
}
