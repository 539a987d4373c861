package role

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type Role string

const (
	Client Role = "CLIENT"
	Artist Role = "ARTIST"
	Studio Role = "STUDIO"
	Admin  Role = "ADMIN"
)

func Parse(s string) (Role, bool) {
	switch r := Role(s); r {
	case Client, Artist, Studio, Admin:
		return r, true
	}
	return "", false
}

// Lookup is the read side Resolve needs. Missing records are reported with
// gorm.ErrRecordNotFound.
type Lookup interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetClientByUser(ctx context.Context, userID uuid.UUID) (*models.Client, error)
	GetArtistByUser(ctx context.Context, userID uuid.UUID) (*models.Artist, error)
	ListStudiosByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Studio, error)
}

// Principal is the authenticated caller with the entities its role owns.
// Only the field matching Role is populated.
type Principal struct {
	User    *models.User
	Role    Role
	Client  *models.Client
	Artist  *models.Artist
	Studios []models.Studio
}

// Resolve loads the caller's profile and the entities linked to its role.
// A missing profile is profile_not_found; a missing role entity is left nil
// so that each operation decides how to report it.
func Resolve(ctx context.Context, lookup Lookup, userID uuid.UUID) (*Principal, error) {
	user, err := lookup.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("profile_not_found")
		}
		return nil, err
	}

	r, ok := Parse(user.Role)
	if !ok {
		return nil, httperr.ErrBusiness("forbidden")
	}

	p := &Principal{User: user, Role: r}

	switch r {
	case Client:
		p.Client, err = lookup.GetClientByUser(ctx, userID)
	case Artist:
		p.Artist, err = lookup.GetArtistByUser(ctx, userID)
	case Studio:
		p.Studios, err = lookup.ListStudiosByOwner(ctx, userID)
	case Admin:
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return p, nil
}

func (p *Principal) Require(roles ...Role) error {
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return httperr.ErrBusiness("forbidden")
}

func (p *Principal) StudioIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(p.Studios))
	for i, s := range p.Studios {
		ids[i] = s.ID
	}
	return ids
}

func (p *Principal) OwnsStudio(studioID *uuid.UUID) bool {
	if studioID == nil {
		return false
	}
	for _, s := range p.Studios {
		if s.ID == *studioID {
			return true
		}
	}
	return false
}
