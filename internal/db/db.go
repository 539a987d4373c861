package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/config"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	gormLogLevel := logger.Warn
	if cfg.IsProduction() {
		gormLogLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db, cfg.DefaultTimezone); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	return db
}

// Health reports whether the pool can reach the database.
type Health struct {
	DB *gorm.DB
}

func (h Health) HealthCheck(ctx context.Context) error {
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Migrate(db *gorm.DB, defaultTimezone string) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Studio{},
		&models.Client{},
		&models.Artist{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	if err := db.Exec(
		`UPDATE studios SET timezone = ? WHERE timezone IS NULL OR timezone = ''`,
		defaultTimezone,
	).Error; err != nil {
		return err
	}

	return db.Exec(exclusionConstraintSQL()).Error
}

// exclusionConstraintSQL keeps two blocking appointments of one artist from
// overlapping even if a writer skips the repository lock.
func exclusionConstraintSQL() string {
	quoted := make([]string, 0, len(domain.BlockingStatuses))
	for _, s := range domain.BlockingStatusStrings() {
		quoted = append(quoted, "'"+s+"'")
	}

	return fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
	) THEN
		ALTER TABLE appointments
			ADD CONSTRAINT appointments_no_overlap
			EXCLUDE USING gist (
				artist_id WITH =,
				tstzrange(start_time, end_time, '[)') WITH &&
			)
			WHERE (status IN (%s));
	END IF;
END
$$;`, strings.Join(quoted, ", "))
}
