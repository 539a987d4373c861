package directory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// ArtistFilter narrows the public artist listing. StudioSlug is optional.
type ArtistFilter struct {
	Style      string
	Query      string
	StudioSlug string
	Limit      int
	Offset     int
}

// ClientFilter lists clients with at least one appointment inside Scope.
type ClientFilter struct {
	Scope  role.Scope
	Query  string
	Limit  int
	Offset int
}

type AuditLogFilter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Repository covers the roster, moderation and listing reads that sit
// outside the appointment lifecycle.
type Repository interface {
	// -------- Artists --------

	// ListBookableArtists returns active artists whose studio, if any, is
	// active too.
	ListBookableArtists(ctx context.Context, f ArtistFilter) ([]models.Artist, int64, error)

	// GetArtist loads the artist with its Studio.
	GetArtist(ctx context.Context, id uuid.UUID) (*models.Artist, error)

	ListStudioArtists(ctx context.Context, studioIDs []uuid.UUID) ([]models.Artist, error)
	SetArtistActive(ctx context.Context, id uuid.UUID, active bool) error

	// -------- Studios --------
	GetStudio(ctx context.Context, id uuid.UUID) (*models.Studio, error)
	SetStudioActive(ctx context.Context, id uuid.UUID, active bool) error

	// -------- Clients / audit --------
	ListClients(ctx context.Context, f ClientFilter) ([]models.Client, int64, error)
	ListAuditLogs(ctx context.Context, f AuditLogFilter) ([]models.AuditLog, int64, error)
}
