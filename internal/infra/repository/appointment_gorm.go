package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Artist
// --------------------------------------------------

func (r *AppointmentGormRepository) GetArtist(
	ctx context.Context,
	artistID uuid.UUID,
) (*models.Artist, error) {

	var artist models.Artist
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Studio").
		First(&artist, "id = ?", artistID).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateIfSlotFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialises writers per artist until commit.
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			ap.ArtistID.String(),
		).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"artist_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.ArtistID,
				domain.BlockingStatusStrings(),
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) withIncludes(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Artist.User").
		Preload("Client").
		Preload("Client.User")
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withIncludes(ctx).
		First(&ap, "appointments.id = ?", appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, int64, error) {

	if filter.Scope.IsEmpty() {
		return []models.Appointment{}, 0, nil
	}

	query := func() *gorm.DB {
		q := applyScope(r.db.WithContext(ctx).Model(&models.Appointment{}), filter.Scope)
		if filter.From != nil {
			q = q.Where("appointments.start_time >= ?", *filter.From)
		}
		if filter.To != nil {
			q = q.Where("appointments.start_time < ?", *filter.To)
		}
		if filter.Status != nil {
			q = q.Where("appointments.status = ?", string(*filter.Status))
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := query().
		Preload("Artist").
		Preload("Artist.User").
		Preload("Client").
		Preload("Client.User").
		Order("appointments.start_time ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func applyScope(q *gorm.DB, scope role.Scope) *gorm.DB {
	switch {
	case scope.All:
		return q
	case scope.ClientID != nil:
		return q.Where("appointments.client_id = ?", *scope.ClientID)
	case scope.ArtistID != nil:
		return q.Where("appointments.artist_id = ?", *scope.ArtistID)
	default:
		return q.Where(
			"appointments.artist_id IN (SELECT id FROM artists WHERE studio_id IN ?)",
			scope.StudioIDs,
		)
	}
}

func (r *AppointmentGormRepository) ListBusyIntervals(
	ctx context.Context,
	artistID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]domain.Interval, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"artist_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			artistID,
			domain.BlockingStatusStrings(),
			to,
			from,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Interval, 0, len(apps))
	for _, ap := range apps {
		out = append(out, domain.Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return out, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
		})

	if res.Error != nil {
		if httperr.IsExclusionConflict(res.Error) {
			return httperr.ErrBusiness("time_conflict")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func (r *AppointmentGormRepository) SetDepositPaymentID(
	ctx context.Context,
	appointmentID uuid.UUID,
	paymentID string,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status IN ?", appointmentID, domain.DepositPayableStatusStrings()).
		Update("deposit_payment_id", paymentID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
