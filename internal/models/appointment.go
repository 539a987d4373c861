package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`
	Client   Client    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	ArtistID uuid.UUID `gorm:"type:uuid;index:idx_appointments_artist_start;not null" json:"artistId"`
	Artist   Artist    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"artist"`

	StartTime       time.Time `gorm:"index:idx_appointments_artist_start;not null" json:"date"`
	DurationMinutes int       `gorm:"not null" json:"duration"`
	EndTime         time.Time `gorm:"not null" json:"endTime"`

	Status string `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	TattooStyle     string         `gorm:"size:100" json:"tattooStyle"`
	Description     string         `gorm:"type:text" json:"description"`
	Notes           string         `gorm:"type:text" json:"notes"`
	ReferenceImages pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"referenceImages"`

	EstimatedPrice   *decimal.Decimal `gorm:"type:numeric(10,2)" json:"estimatedPrice"`
	Deposit          *decimal.Decimal `gorm:"type:numeric(10,2)" json:"deposit"`
	DepositPaymentID string           `gorm:"size:100" json:"depositPaymentId,omitempty"`

	CancelledAt *time.Time `json:"cancelledAt"`
	CompletedAt *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
