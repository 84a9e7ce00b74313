package routes

import (
	"log"

	"hospital-services/internal/config"
	"hospital-services/internal/handlers"
	"hospital-services/internal/metrics"
	"hospital-services/internal/middleware"
	"hospital-services/internal/models"
	"hospital-services/internal/provision"
	"hospital-services/internal/remote"
	"hospital-services/internal/triage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// registerCommon adds the health and metrics endpoints every service exposes.
func registerCommon(router *gin.Engine, gatherer prometheus.Gatherer) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))
}

// SetupAccountsRoutes configures the accounts service routes, wiring the provisioning
// coordinator over the local store and the downstream role services.
func SetupAccountsRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, collector *metrics.Collector, gatherer prometheus.Gatherer) {
	issuer := &handlers.JWTTokenIssuer{DB: db, Cfg: cfg}
	coordinator := provision.NewCoordinator(
		&provision.GormAccountStore{DB: db},
		provision.NewHTTPRoleClient(cfg.Services, cfg.RemoteTimeout),
		issuer,
		collector,
		log.Default(),
	)
	accountHandler := handlers.NewAccountHandler(db, cfg, coordinator, issuer)

	// Public auth endpoints are the only unauthenticated writes; keep them
	// rate limited per client.
	limiter := middleware.NewRateLimiter(rate.Limit(2), 30)

	api := router.Group("/api/auth")
	{
		api.POST("/register/", limiter.Middleware(), accountHandler.Register)
		api.POST("/login/", limiter.Middleware(), accountHandler.Login)
		api.POST("/refresh/", accountHandler.RefreshToken)
		api.POST("/logout/", accountHandler.Logout)

		admin := api.Group("", middleware.AuthMiddleware(cfg), middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			admin.POST("/accounts/", accountHandler.CreateAccount)
			admin.GET("/users/", accountHandler.GetUsers)
			admin.GET("/users/:id/", accountHandler.GetUserByID)
			admin.PUT("/users/:id/", accountHandler.UpdateUser)
			admin.DELETE("/users/:id/", accountHandler.DeleteUser)
		}
	}

	registerCommon(router, gatherer)
}

// SetupPatientRoutes configures the patient service routes.
func SetupPatientRoutes(router *gin.Engine, db *gorm.DB, gatherer prometheus.Gatherer) {
	patientHandler := handlers.NewPatientHandler(db)

	api := router.Group("/api/patient")
	{
		api.GET("/", patientHandler.ListPatients)
		api.POST("/", patientHandler.CreatePatient)
		api.GET("/:id/", patientHandler.GetPatientByID)
		api.PUT("/:id/", patientHandler.UpdatePatient)
		api.PATCH("/:id/", patientHandler.UpdatePatient)
		api.DELETE("/:id/", patientHandler.DeletePatient)
		api.GET("/user/:userID/", patientHandler.GetPatientByUserID)
	}

	registerCommon(router, gatherer)
}

// SetupDoctorRoutes configures the doctor service routes.
func SetupDoctorRoutes(router *gin.Engine, db *gorm.DB, gatherer prometheus.Gatherer) {
	doctorHandler := handlers.NewDoctorHandler(db)

	api := router.Group("/api/doctor")
	{
		api.GET("/", doctorHandler.ListDoctors)
		api.POST("/", doctorHandler.CreateDoctor)
		api.GET("/:id/", doctorHandler.GetDoctorByID)
		api.PUT("/:id/", doctorHandler.UpdateDoctor)
		api.PATCH("/:id/", doctorHandler.UpdateDoctor)
		api.DELETE("/:id/", doctorHandler.DeleteDoctor)
		api.GET("/specialization/:specialization/", doctorHandler.GetDoctorsBySpecialization)
	}

	registerCommon(router, gatherer)
}

// SetupAppointmentRoutes configures the appointment service routes with the reference
// validator over the patient and doctor services.
func SetupAppointmentRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, collector *metrics.Collector, gatherer prometheus.Gatherer) {
	validator := remote.NewValidator(remote.NewChecker(cfg.Services, cfg.RemoteTimeout, collector))
	appointmentHandler := handlers.NewAppointmentHandler(db, validator)

	api := router.Group("/api/appointment")
	{
		api.GET("/", appointmentHandler.ListAppointments)
		api.POST("/", appointmentHandler.CreateAppointment)
		api.GET("/:id/", appointmentHandler.GetAppointmentByID)
		api.PUT("/:id/", appointmentHandler.UpdateAppointment)
		api.PATCH("/:id/status/", appointmentHandler.UpdateAppointmentStatus)
		api.DELETE("/:id/", appointmentHandler.DeleteAppointment)
	}

	registerCommon(router, gatherer)
}

// SetupMedicalRecordRoutes configures the medical record service routes with the
// reference validator over the patient, doctor and appointment services.
func SetupMedicalRecordRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, collector *metrics.Collector, gatherer prometheus.Gatherer) {
	validator := remote.NewValidator(remote.NewChecker(cfg.Services, cfg.RemoteTimeout, collector))
	recordHandler := handlers.NewMedicalRecordHandler(db, validator)

	api := router.Group("/api/medical-records")
	{
		api.GET("/", recordHandler.ListMedicalRecords)
		api.POST("/", recordHandler.CreateMedicalRecord)
		api.GET("/:id/", recordHandler.GetMedicalRecordByID)
		api.PUT("/:id/", recordHandler.UpdateMedicalRecord)
		api.PATCH("/:id/", recordHandler.UpdateMedicalRecord)
		api.DELETE("/:id/", recordHandler.DeleteMedicalRecord)
		api.GET("/patient/:patientID/", recordHandler.GetMedicalRecordsByPatient)
		api.GET("/doctor/:doctorID/", recordHandler.GetMedicalRecordsByDoctor)
	}

	registerCommon(router, gatherer)
}

// SetupChatbotRoutes configures the symptom-triage service routes.
func SetupChatbotRoutes(router *gin.Engine, engine *triage.Engine, gatherer prometheus.Gatherer) {
	chatbotHandler := handlers.NewChatbotHandler(engine)

	api := router.Group("/chatbot")
	{
		api.POST("/start/", chatbotHandler.StartConversation)
		api.POST("/respond/", chatbotHandler.Respond)
	}

	registerCommon(router, gatherer)
}
