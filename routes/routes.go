package routes

import (
	"clinicpro-backend/config"
	"clinicpro-backend/controllers"
	"clinicpro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.POST("/change-password", controllers.ChangePassword)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		admin := api.Group("/admin", utils.RequireRole(utils.RoleAdmin))
		{
			admin.GET("/dashboard", controllers.GetAdminDashboard)

			sessions := admin.Group("/sessions")
			{
				sessions.GET("", controllers.GetSessions)
				sessions.POST("", controllers.CreateSession)
				sessions.PUT("/:id", controllers.UpdateSession)
				sessions.DELETE("/:id", controllers.DeleteSession)
			}

			practitioners := admin.Group("/practitioners")
			{
				practitioners.GET("", controllers.GetPractitioners)
				practitioners.POST("", controllers.CreatePractitioner)
				practitioners.PUT("/:id", controllers.UpdatePractitioner)
				practitioners.POST("/:id/activate", controllers.ActivatePractitioner)
				practitioners.POST("/:id/deactivate", controllers.DeactivatePractitioner)
				practitioners.PUT("/:id/extra-commission", controllers.UpdateExtraCommission)
			}

			assistants := admin.Group("/assistants")
			{
				assistants.GET("", controllers.GetAssistants)
				assistants.POST("", controllers.CreateAssistant)
			}

			commissions := admin.Group("/commissions")
			{
				commissions.GET("", controllers.GetCommissionRates)
				commissions.PUT("/session-types", controllers.UpsertSessionTypeRate)
				commissions.PUT("/payment-methods", controllers.UpsertPaymentMethodRate)
				commissions.DELETE("/session-types/:id", controllers.DeleteSessionTypeRate)
				commissions.DELETE("/payment-methods/:id", controllers.DeletePaymentMethodRate)
			}
		}

		practitioner := api.Group("/practitioner", utils.RequireRole(utils.RolePractitioner))
		{
			practitioner.GET("/dashboard", controllers.GetPractitionerDashboard)
			practitioner.GET("/sessions", controllers.GetMySessions)
		}

		assistant := api.Group("/assistant", utils.RequireRole(utils.RoleAssistant))
		{
			assistant.GET("/dashboard", controllers.GetAssistantDashboard)

			sessions := assistant.Group("/sessions")
			{
				sessions.GET("", controllers.AssistantGetSessions)
				sessions.POST("", controllers.AssistantCreateSession)
				sessions.PUT("/:id", controllers.AssistantUpdateSession)
				sessions.DELETE("/:id", controllers.AssistantDeleteSession)
			}
		}
	}

	return r
}
