package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

// --------------------------------------------------
// Artists
// --------------------------------------------------

// bookableArtists is the shared predicate of the public directory: the
// artist is active and has no studio or an active one.
const bookableArtists = `artists.is_active = true AND (
	artists.studio_id IS NULL OR
	artists.studio_id IN (SELECT id FROM studios WHERE is_active = true)
)`

func (r *DirectoryGormRepository) ListBookableArtists(
	ctx context.Context,
	f directory.ArtistFilter,
) ([]models.Artist, int64, error) {

	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Model(&models.Artist{}).
			Where(bookableArtists)

		if f.Style != "" {
			q = q.Where("? = ANY(artists.styles)", f.Style)
		}
		if s := strings.ToLower(strings.TrimSpace(f.Query)); s != "" {
			like := "%" + s + "%"
			q = q.Where("LOWER(artists.display_name) LIKE ? OR LOWER(artists.bio) LIKE ?", like, like)
		}
		if f.StudioSlug != "" {
			q = q.Where("artists.studio_id IN (SELECT id FROM studios WHERE slug = ?)", f.StudioSlug)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var artists []models.Artist
	if err := query().
		Preload("Studio").
		Order("artists.display_name ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&artists).Error; err != nil {
		return nil, 0, err
	}

	return artists, total, nil
}

func (r *DirectoryGormRepository) GetArtist(ctx context.Context, id uuid.UUID) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.WithContext(ctx).
		Preload("Studio").
		First(&artist, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *DirectoryGormRepository) ListStudioArtists(
	ctx context.Context,
	studioIDs []uuid.UUID,
) ([]models.Artist, error) {

	artists := []models.Artist{}
	if len(studioIDs) == 0 {
		return artists, nil
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("studio_id IN ?", studioIDs).
		Order("display_name ASC").
		Find(&artists).Error
	return artists, err
}

func (r *DirectoryGormRepository) SetArtistActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.setActive(ctx, &models.Artist{}, id, active)
}

// --------------------------------------------------
// Studios
// --------------------------------------------------

func (r *DirectoryGormRepository) GetStudio(ctx context.Context, id uuid.UUID) (*models.Studio, error) {
	var studio models.Studio
	if err := r.db.WithContext(ctx).First(&studio, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &studio, nil
}

func (r *DirectoryGormRepository) SetStudioActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.setActive(ctx, &models.Studio{}, id, active)
}

func (r *DirectoryGormRepository) setActive(ctx context.Context, model any, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Clients
// --------------------------------------------------

func (r *DirectoryGormRepository) ListClients(
	ctx context.Context,
	f directory.ClientFilter,
) ([]models.Client, int64, error) {

	if f.Scope.IsEmpty() {
		return []models.Client{}, 0, nil
	}

	query := func() *gorm.DB {
		q := clientScope(
			r.db.WithContext(ctx).
				Model(&models.Client{}).
				Joins("JOIN users ON users.id = clients.user_id"),
			f.Scope,
		)

		if s := strings.ToLower(strings.TrimSpace(f.Query)); s != "" {
			like := "%" + s + "%"
			q = q.Where(
				"LOWER(users.name) LIKE ? OR clients.phone LIKE ? OR LOWER(users.email) LIKE ?",
				like, like, like,
			)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []models.Client
	if err := query().
		Preload("User").
		Order("clients.created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func clientScope(q *gorm.DB, scope role.Scope) *gorm.DB {
	switch {
	case scope.All:
		return q
	case scope.ClientID != nil:
		return q.Where("clients.id = ?", *scope.ClientID)
	case scope.ArtistID != nil:
		return q.Where("clients.id IN (SELECT client_id FROM appointments WHERE artist_id = ?)", *scope.ArtistID)
	default:
		return q.Where(
			"clients.id IN (SELECT a.client_id FROM appointments a JOIN artists ar ON ar.id = a.artist_id WHERE ar.studio_id IN ?)",
			scope.StudioIDs,
		)
	}
}

// --------------------------------------------------
// Audit logs
// --------------------------------------------------

func (r *DirectoryGormRepository) ListAuditLogs(
	ctx context.Context,
	f directory.AuditLogFilter,
) ([]models.AuditLog, int64, error) {

	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.AuditLog{})
		if f.Action != "" {
			q = q.Where("action = ?", f.Action)
		}
		if f.Entity != "" {
			q = q.Where("entity = ?", f.Entity)
		}
		if f.From != nil {
			q = q.Where("created_at >= ?", *f.From)
		}
		if f.To != nil {
			q = q.Where("created_at < ?", *f.To)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := query().
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// Compile-time check
var _ directory.Repository = (*DirectoryGormRepository)(nil)
