package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// ProfileGormRepository resolves the caller's profile and role entities.
type ProfileGormRepository struct {
	db *gorm.DB
}

func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

func (r *ProfileGormRepository) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *ProfileGormRepository) GetClientByUser(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&client, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ProfileGormRepository) GetArtistByUser(ctx context.Context, userID uuid.UUID) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.WithContext(ctx).
		Preload("Studio").
		First(&artist, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *ProfileGormRepository) ListStudiosByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Studio, error) {
	var studios []models.Studio
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&studios).Error; err != nil {
		return nil, err
	}
	return studios, nil
}

var _ role.Lookup = (*ProfileGormRepository)(nil)
