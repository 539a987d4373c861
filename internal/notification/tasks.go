package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

const (
	TypeAppointmentBooked = "notification:appointment_booked"
	TypeAppointmentStatus = "notification:appointment_status"

	Queue      = "notifications"
	MaxRetries = 5
)

// AppointmentPayload is the task body for both task types. The worker does
// not read the database; everything the email needs travels with the task.
type AppointmentPayload struct {
	AppointmentID   uuid.UUID `json:"appointment_id"`
	ClientName      string    `json:"client_name"`
	ClientEmail     string    `json:"client_email"`
	ArtistName      string    `json:"artist_name"`
	ArtistEmail     string    `json:"artist_email"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"duration_minutes"`
	TattooStyle     string    `json:"tattoo_style,omitempty"`
	Status          string    `json:"status"`
	PreviousStatus  string    `json:"previous_status,omitempty"`
}

func NewAppointmentPayload(ap *models.Appointment) AppointmentPayload {
	artistName := ap.Artist.DisplayName
	if artistName == "" {
		artistName = ap.Artist.User.Name
	}

	return AppointmentPayload{
		AppointmentID:   ap.ID,
		ClientName:      ap.Client.User.Name,
		ClientEmail:     ap.Client.User.Email,
		ArtistName:      artistName,
		ArtistEmail:     ap.Artist.User.Email,
		Start:           ap.StartTime,
		DurationMinutes: ap.DurationMinutes,
		TattooStyle:     ap.TattooStyle,
		Status:          ap.Status,
	}
}

func (p AppointmentPayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

func UnmarshalPayload(b []byte) (AppointmentPayload, error) {
	var p AppointmentPayload
	err := json.Unmarshal(b, &p)
	return p, err
}
