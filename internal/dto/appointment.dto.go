package dto

import (
	"time"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type AppointmentCreatedResponse struct {
	Appointment *models.Appointment `json:"appointment"`
	Message     string              `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type BusyResponse struct {
	ArtistID string         `json:"artistId"`
	From     time.Time      `json:"from"`
	To       time.Time      `json:"to"`
	Busy     []BusyInterval `json:"busy"`
}

type DepositCheckoutResponse struct {
	PreferenceID string `json:"preferenceId"`
	CheckoutURL  string `json:"checkoutUrl"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
