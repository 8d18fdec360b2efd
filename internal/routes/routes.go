package routes

import (
	"clinic-portal-server/internal/appointment"
	"clinic-portal-server/internal/config"
	"clinic-portal-server/internal/handlers"
	"clinic-portal-server/internal/middleware"
	"clinic-portal-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	// Initialize handlers
	facade := appointment.NewFacade(db, log)
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, facade, log)
	medicineHandler := handlers.NewMedicineHandler(db)
	prescriptionHandler := handlers.NewPrescriptionHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Doctors list is accessible by all authenticated users for booking
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			// Patient list for staff
			userRoutes.GET("/patients", userHandler.GetPatients)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Patients create appointments for themselves
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CreateAppointment)

			// Role-scoped, bucketed collection
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)

			// Specific appointment access (involved parties or admin, checked in facade)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)

			// Permitted lifecycle actions for the caller
			appointmentRoutes.GET("/:id/actions", appointmentHandler.GetAppointmentActions)

			// Lifecycle transitions (approve/reject/complete/cancel); legality
			// is enforced by the authorization matrix and transition engine
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)

			// Reschedule-as-edit while pending approval
			appointmentRoutes.PATCH("/:id", appointmentHandler.RescheduleAppointment)
		}

		// Medicine inventory routes
		medicineRoutes := private.Group("/medicines")
		{
			medicineRoutes.GET("", medicineHandler.GetMedicines)
			medicineRoutes.GET("/:id", medicineHandler.GetMedicineByID)

			adminMedicineRoutes := medicineRoutes.Group("")
			adminMedicineRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminMedicineRoutes.POST("", medicineHandler.CreateMedicine)
				adminMedicineRoutes.PUT("/:id", medicineHandler.UpdateMedicine)
				adminMedicineRoutes.DELETE("/:id", medicineHandler.DeleteMedicine)
			}
		}

		// Prescription routes
		prescriptionRoutes := private.Group("/prescriptions")
		{
			prescriptionRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.CreatePrescription)
			prescriptionRoutes.GET("/patient/:patientId", prescriptionHandler.GetPrescriptionsForPatient)
			prescriptionRoutes.GET("/:id", prescriptionHandler.GetPrescriptionByID)
			prescriptionRoutes.GET("/:id/export", prescriptionHandler.ExportPrescription)
			prescriptionRoutes.PATCH("/:id/status", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), prescriptionHandler.UpdatePrescriptionStatus)
		}

		// Dashboard routes (staff only)
		dashboardRoutes := private.Group("/dashboard")
		dashboardRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin))
		{
			dashboardRoutes.GET("/stats", dashboardHandler.GetStats)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
