package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/carelog-backend/internal/handlers"
	"github.com/yungbote/carelog-backend/internal/middleware"
	"github.com/yungbote/carelog-backend/internal/utils"
)

type Handlers struct {
	Healthcheck *handlers.HealthcheckHandler
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Patient     *handlers.PatientHandler
	Note        *handlers.NoteHandler
	Medication  *handlers.MedicationHandler
	Summary     *handlers.SummaryHandler
	Export      *handlers.ExportHandler
}

type Middleware struct {
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

func NewRouter(h Handlers, m Middleware) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("carelog-backend"))
	router.Use(cors.New(corsConfig()))

	router.GET("/healthcheck", h.Healthcheck.Healthcheck)

	public := router.Group("/api")
	public.Use(m.RateLimit.Limit())
	{
		public.POST("/register", h.Auth.Register)
		public.POST("/login", h.Auth.Login)
	}

	refresh := router.Group("/api")
	refresh.Use(m.Auth.RequireRefresh(), m.RateLimit.Limit())
	{
		refresh.POST("/refresh", h.Auth.Refresh)
	}

	protected := router.Group("/api")
	protected.Use(m.Auth.RequireAuth(), m.RateLimit.Limit())
	{
		protected.POST("/logout", h.Auth.Logout)
		protected.GET("/me", h.User.GetCurrentUser)

		protected.GET("/patients", h.Patient.List)
		protected.POST("/patients", h.Patient.Create)
		protected.GET("/patients/:patient_id", h.Patient.Get)
		protected.PUT("/patients/:patient_id", h.Patient.Update)
		protected.DELETE("/patients/:patient_id", h.Patient.Delete)
		protected.POST("/patients/:patient_id/avatar", h.Patient.UploadAvatar)

		protected.GET("/patients/:patient_id/notes", h.Note.List)
		protected.POST("/patients/:patient_id/notes", h.Note.Create)
		protected.PUT("/patients/:patient_id/notes/:note_id", h.Note.Update)
		protected.DELETE("/patients/:patient_id/notes/:note_id", h.Note.Delete)

		protected.GET("/patients/:patient_id/medications", h.Medication.List)
		protected.POST("/patients/:patient_id/medications", h.Medication.Create)
		protected.PUT("/patients/:patient_id/medications/:medication_id", h.Medication.Update)
		protected.DELETE("/patients/:patient_id/medications/:medication_id", h.Medication.Delete)

		protected.POST("/generate-summary", h.Summary.Generate)
		protected.POST("/patients/:patient_id/export-summary", h.Export.ExportSummary)
		protected.GET("/patients/:patient_id/export-record", h.Export.ExportRecord)
	}

	return router
}

func corsConfig() cors.Config {
	origins := strings.Split(utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173", nil), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Refresh-Token"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
