package role

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// Scope restricts which appointments a principal may see.
// The zero value matches nothing.
type Scope struct {
	All       bool
	ClientID  *uuid.UUID
	ArtistID  *uuid.UUID
	StudioIDs []uuid.UUID
}

// AppointmentScope is the one place where role decides appointment visibility.
func (p *Principal) AppointmentScope() Scope {
	switch p.Role {
	case Admin:
		return Scope{All: true}
	case Client:
		if p.Client != nil {
			return Scope{ClientID: &p.Client.ID}
		}
	case Artist:
		if p.Artist != nil {
			return Scope{ArtistID: &p.Artist.ID}
		}
	case Studio:
		if len(p.Studios) > 0 {
			return Scope{StudioIDs: p.StudioIDs()}
		}
	}
	return Scope{}
}

func (s Scope) IsEmpty() bool {
	return !s.All && s.ClientID == nil && s.ArtistID == nil && len(s.StudioIDs) == 0
}

// Matches expects ap.Artist to be loaded when the scope is studio based.
func (s Scope) Matches(ap *models.Appointment) bool {
	switch {
	case s.All:
		return true
	case s.ClientID != nil:
		return ap.ClientID == *s.ClientID
	case s.ArtistID != nil:
		return ap.ArtistID == *s.ArtistID
	case len(s.StudioIDs) > 0:
		if ap.Artist.StudioID == nil {
			return false
		}
		for _, id := range s.StudioIDs {
			if id == *ap.Artist.StudioID {
				return true
			}
		}
	}
	return false
}

// CanManage reports whether the principal may move the appointment through
// artist-side status transitions.
func (p *Principal) CanManage(ap *models.Appointment) bool {
	switch p.Role {
	case Admin:
		return true
	case Artist:
		return p.Artist != nil && ap.ArtistID == p.Artist.ID
	case Studio:
		return p.OwnsStudio(ap.Artist.StudioID)
	}
	return false
}
