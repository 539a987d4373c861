package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
	usecase "github.com/BruksfildServices01/tattoo-scheduler/internal/usecase/appointment"
)

const currency = "BRL"

var ErrNotConfigured = errors.New("payment gateway not configured")

// PreferenceCreator is the slice of preference.Client used here.
type PreferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type MercadoPago struct {
	preferences PreferenceCreator
}

// NewMercadoPago returns a gateway that fails every call with
// ErrNotConfigured when accessToken is empty.
func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	if accessToken == "" {
		return &MercadoPago{}, nil
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{preferences: preference.NewClient(cfg)}, nil
}

func NewMercadoPagoWith(preferences PreferenceCreator) *MercadoPago {
	return &MercadoPago{preferences: preferences}
}

func (m *MercadoPago) CreateDepositCheckout(ctx context.Context, ap *models.Appointment) (*usecase.Checkout, error) {
	if m.preferences == nil {
		return nil, ErrNotConfigured
	}
	if ap.Deposit == nil {
		return nil, errors.New("appointment has no deposit")
	}

	amount, _ := ap.Deposit.Round(2).Float64()

	title := "Tattoo appointment deposit"
	if name := ap.Artist.DisplayName; name != "" {
		title = fmt.Sprintf("Tattoo appointment deposit - %s", name)
	}

	res, err := m.preferences.Create(ctx, preference.Request{
		ExternalReference: ap.ID.String(),
		Items: []preference.ItemRequest{{
			ID:         ap.ID.String(),
			Title:      title,
			Quantity:   1,
			UnitPrice:  amount,
			CurrencyID: currency,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &usecase.Checkout{
		PreferenceID: res.ID,
		URL:          res.InitPoint,
	}, nil
}

var _ usecase.PaymentGateway = (*MercadoPago)(nil)
