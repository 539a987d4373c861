package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Artist struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user"`

	StudioID *uuid.UUID `gorm:"type:uuid;index" json:"studioId"`
	Studio   *Studio    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"studio,omitempty"`

	DisplayName string         `gorm:"size:100;not null" json:"displayName"`
	Bio         string         `gorm:"type:text" json:"bio"`
	Styles      pq.StringArray `gorm:"type:text[]" json:"styles"`
	IsActive    bool           `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AcceptsBookings is false when the artist or their studio is deactivated.
// Studio must be loaded for the studio half of the check.
func (a *Artist) AcceptsBookings() bool {
	if !a.IsActive {
		return false
	}
	return a.Studio == nil || a.Studio.IsActive
}

func (a *Artist) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
