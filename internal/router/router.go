package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/medtrack-dev/medtrack/internal/handlers"
	"github.com/medtrack-dev/medtrack/internal/middleware"
	"github.com/medtrack-dev/medtrack/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		medications := api.Group("/medications", middleware.AuthMiddleware())
		{
			medications.GET("", handlers.ListMedications)
			medications.POST("", handlers.CreateMedication)
			medications.PUT("/:medication_id", handlers.UpdateMedication)
			medications.DELETE("/:medication_id", handlers.DeleteMedication)
			medications.POST("/:medication_id/log", handlers.LogIntake)
		}

		api.GET("/medication-logs", middleware.AuthMiddleware(), handlers.ListIntakeLogs)
		api.GET("/adherence", middleware.AuthMiddleware(), handlers.GetAdherence)

		caretaker := api.Group("/caretaker", middleware.AuthMiddleware())
		{
			caretaker.POST("/patients", handlers.AddPatient)
			caretaker.GET("/patients", handlers.ListPatients)
			caretaker.GET("/patients/:patient_id/medications", handlers.GetPatientMedications)
			caretaker.GET("/patients/:patient_id/logs", handlers.GetPatientLogs)
			caretaker.GET("/patients/:patient_id/adherence", handlers.GetPatientAdherence)
		}

		notifications := api.Group("/notification-settings", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotificationSettings)
			notifications.PUT("", handlers.UpdateNotificationSettings)
			notifications.POST("/test", handlers.TestNotification)
		}
	}

	return r
}
