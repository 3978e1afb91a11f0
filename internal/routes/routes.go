package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	"github.com/salonsuite/salon-scheduler/internal/config"
	"github.com/salonsuite/salon-scheduler/internal/handlers"
	infraRepo "github.com/salonsuite/salon-scheduler/internal/infra/repository"
	"github.com/salonsuite/salon-scheduler/internal/lock"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/notify"
	"github.com/salonsuite/salon-scheduler/internal/payment"
	ucAppointment "github.com/salonsuite/salon-scheduler/internal/usecase/appointment"
)

// Deps are the process-lifetime collaborators built in main and injected
// here; nothing in this package reaches for global state.
type Deps struct {
	DB       *gorm.DB
	Locker   lock.BookingLocker
	Payments payment.Authorizer
	Mailer   *notify.Mailer
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(deps.DB)

	auditDispatcher := audit.NewDispatcher(audit.New(deps.DB))
	notifyDispatcher := notify.NewDispatcher(deps.Mailer)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		cfg.InstituteTimezone,
	)

	createUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		deps.Locker,
		deps.Payments,
		auditDispatcher,
		notifyDispatcher,
		cfg.InstituteTimezone,
		cfg.MinAdvanceMinutes,
	)

	updateUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		deps.Locker,
		auditDispatcher,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		notifyDispatcher,
		cfg.InstituteTimezone,
	)

	completeUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.InstituteTimezone,
	)

	byDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
		cfg.InstituteTimezone,
	)

	byMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
		cfg.InstituteTimezone,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(deps.DB, cfg)
	meHandler := handlers.NewMeHandler(deps.DB, appointmentRepo)
	publicHandler := handlers.NewPublicHandler(deps.DB, availabilityUC, cfg.InstituteTimezone)
	bookingHandler := handlers.NewBookingHandler(createUC, cancelUC)
	planningHandler := handlers.NewPlanningHandler(
		createUC,
		updateUC,
		cancelUC,
		completeUC,
		byDateUC,
		byMonthUC,
		cfg.InstituteTimezone,
	)
	clientHandler := handlers.NewClientHandler(deps.DB)
	serviceHandler := handlers.NewServiceHandler(deps.DB)
	userHandler := handlers.NewUserHandler(deps.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/categories", publicHandler.ListCategories)
			publicAPI.GET("/practitioners", publicHandler.ListPractitioners)
			publicAPI.GET("/availability", publicHandler.Availability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.GET("/me/bookings", meHandler.MyBookings)

			// ------------------------------
			// CLIENT BOOKINGS
			// ------------------------------
			bookings := secured.Group("/bookings")
			bookings.Use(middleware.RequireRoles(models.RoleClient))
			{
				bookings.POST("", bookingHandler.Create)
				bookings.PATCH("/:id/cancel", bookingHandler.Cancel)
			}

			// ------------------------------
			// STAFF PLANNING
			// ------------------------------
			planning := secured.Group("/planning")
			planning.Use(middleware.RequireRoles(models.RoleStaff, models.RoleAdmin))
			{
				planning.POST("/appointments", planningHandler.Create)
				planning.GET("/appointments", planningHandler.ListByDate)
				planning.GET("/appointments/month", planningHandler.ListByMonth)
				planning.PATCH("/appointments/:id", planningHandler.Update)
				planning.PATCH("/appointments/:id/cancel", planningHandler.Cancel)
				planning.PATCH("/appointments/:id/complete", planningHandler.Complete)

				planning.GET("/clients", clientHandler.List)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				admin.GET("/services", serviceHandler.List)
				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)
				admin.POST("/services/:id/options", serviceHandler.CreateOption)
				admin.DELETE("/services/:id/options/:option_id", serviceHandler.DeleteOption)
				admin.POST("/categories", serviceHandler.CreateCategory)

				admin.GET("/users", userHandler.List)
				admin.PATCH("/users/:id", userHandler.Update)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
