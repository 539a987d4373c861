package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
)

type CreateDepositCheckout struct {
	repo     domain.Repository
	profiles role.Lookup
	payments PaymentGateway
	audit    *audit.Dispatcher
}

func NewCreateDepositCheckout(
	repo domain.Repository,
	profiles role.Lookup,
	payments PaymentGateway,
	audit *audit.Dispatcher,
) *CreateDepositCheckout {
	return &CreateDepositCheckout{
		repo:     repo,
		profiles: profiles,
		payments: payments,
		audit:    audit,
	}
}

func (uc *CreateDepositCheckout) Execute(
	ctx context.Context,
	userID uuid.UUID,
	appointmentID uuid.UUID,
) (*Checkout, error) {

	p, err := role.Resolve(ctx, uc.profiles, userID)
	if err != nil {
		return nil, err
	}
	if err := p.Require(role.Client); err != nil {
		return nil, err
	}

	ap, err := loadVisible(ctx, uc.repo, p, appointmentID)
	if err != nil {
		return nil, err
	}

	if ap.Deposit == nil || !ap.Deposit.IsPositive() {
		return nil, httperr.ErrBusiness("no_deposit")
	}

	if !domain.Status(ap.Status).IsDepositPayable() {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	checkout, err := uc.payments.CreateDepositCheckout(ctx, ap)
	if err != nil {
		return nil, err
	}

	// Guarded by status: a cancellation made during the gateway call stands.
	if err := uc.repo.SetDepositPaymentID(ctx, ap.ID, checkout.PreferenceID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &userID,
		Action:   "deposit_checkout_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"preference_id": checkout.PreferenceID},
	})

	return checkout, nil
}
