package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/tattoo-scheduler/internal/db"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/tattoo-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/middleware"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/ratelimit"
	ucAppointment "github.com/BruksfildServices01/tattoo-scheduler/internal/usecase/appointment"
)

// Infra carries the adapters built in main. Audit is owned by the caller so
// it can be drained on shutdown.
type Infra struct {
	Audit    *audit.Dispatcher
	Limiter  ratelimit.Limiter
	Notifier ucAppointment.Notifier
	Payments ucAppointment.PaymentGateway
	Images   handlers.ImageUploader
	Validate handlers.ImageValidator
	Health   map[string]handlers.HealthChecker
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	profileRepo := infraRepo.NewProfileGormRepository(db)
	directoryRepo := infraRepo.NewDirectoryGormRepository(db)

	csrf := middleware.NewCSRF(cfg.JWTSecret)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		profileRepo,
		infra.Audit,
		infra.Notifier,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo, profileRepo)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo, profileRepo)

	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		appointmentRepo,
		profileRepo,
		infra.Audit,
		infra.Notifier,
	)

	depositUC := ucAppointment.NewCreateDepositCheckout(
		appointmentRepo,
		profileRepo,
		infra.Payments,
		infra.Audit,
	)

	busyUC := ucAppointment.NewListBusyIntervals(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		listAppointmentsUC,
		getAppointmentUC,
		updateStatusUC,
		depositUC,
	)

	artistHandler := handlers.NewArtistHandler(directoryRepo, busyUC)
	studioHandler := handlers.NewStudioHandler(directoryRepo, infra.Audit)
	adminHandler := handlers.NewAdminHandler(directoryRepo, infra.Audit)
	clientHandler := handlers.NewClientHandler(directoryRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(directoryRepo)
	meHandler := handlers.NewMeHandler()
	csrfHandler := handlers.NewCSRFHandler(csrf)
	uploadHandler := handlers.NewUploadHandler(infra.Images, infra.Validate)
	healthHandler := handlers.NewHealthHandler(infra.Health)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", healthHandler.Health)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (rate limited by IP)
		// ------------------------------
		public := api.Group("/")
		public.Use(middleware.RateLimit(infra.Limiter))
		{
			public.GET("/artists", artistHandler.List)
			public.GET("/artists/:id", artistHandler.Get)
			public.GET("/artists/:id/busy", artistHandler.Busy)
		}

		// ------------------------------
		// AUTHENTICATED (rate limited by user)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(
			middleware.AuthMiddleware(cfg.JWTSecret),
			middleware.RateLimit(infra.Limiter),
			middleware.SessionRefresh(cfg.JWTSecret, cfg.SessionRefreshWindow),
			csrf.Middleware(),
		)
		{
			secured.GET("/csrf", csrfHandler.Token)

			anyRole := middleware.RequireRole(profileRepo)
			secured.GET("/me", anyRole, meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.POST("/appointments/:id/deposit", appointmentHandler.Deposit)

			secured.POST(
				"/uploads/reference-images",
				middleware.RequireRole(profileRepo, role.Client),
				uploadHandler.ReferenceImage,
			)

			secured.GET(
				"/clients",
				middleware.RequireRole(profileRepo, role.Artist, role.Studio, role.Admin),
				clientHandler.List,
			)

			// ------------------------------
			// STUDIO
			// ------------------------------
			studio := secured.Group("/studio")
			studio.Use(middleware.RequireRole(profileRepo, role.Studio))
			{
				studio.GET("/artists", studioHandler.ListArtists)
				studio.PATCH("/artists/:id", studioHandler.SetArtistActive)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(profileRepo, role.Admin))
			{
				admin.PATCH("/artists/:id", adminHandler.SetArtistActive)
				admin.PATCH("/studios/:id", adminHandler.SetStudioActive)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

// DefaultHealth is the health map for the API process.
func DefaultHealth(db *gorm.DB, redis handlers.HealthChecker) map[string]handlers.HealthChecker {
	return map[string]handlers.HealthChecker{
		"database": dbpkg.Health{DB: db},
		"redis":    redis,
	}
}
