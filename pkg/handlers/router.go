package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the full route table. Both the standalone server and
// the serverless entrypoint share it.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "ShiftDesk API",
			"version": "1.0.0",
		})
	})

	// Onboarding and login
	r.POST("/register", h.RegisterOrganization)
	r.POST("/join", h.JoinOrganization)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", h.AuthMiddleware(), h.Me)

	authed := r.Group("/")
	authed.Use(h.AuthMiddleware())
	{
		availabilities := authed.Group("/availabilities")
		{
			availabilities.POST("", h.CreateAvailability)
			availabilities.GET("", h.ListAvailabilities)
			availabilities.GET("/:id", h.GetAvailability)
			availabilities.PUT("/:id", h.UpdateAvailability)
			availabilities.DELETE("/:id", h.DeleteAvailability)
			availabilities.GET("/user/:id", h.GetAvailabilitiesByUser)
			availabilities.GET("/user/:id/date/:date", h.GetAvailabilitiesByUserAndDate)
			availabilities.GET("/date/:date", h.GetAvailabilitiesByDate)
		}

		shifts := authed.Group("/shifts")
		{
			shifts.POST("", h.CreateShift)
			shifts.POST("/bulk", h.CreateShiftsBulk)
			shifts.GET("", h.ListShifts)
			shifts.GET("/:id", h.GetShift)
			shifts.PUT("/:id", h.UpdateShift)
			shifts.DELETE("/:id", h.DeleteShift)
			shifts.GET("/date/:date", h.GetShiftsByDate)
			shifts.GET("/user/:id", h.GetShiftsByUser)
			shifts.GET("/user/:id/date/:date", h.GetShiftsByUserAndDate)
			shifts.POST("/calculate", h.CalculateShifts)

			shifts.GET("/slots/all", h.ListSlots)
			shifts.GET("/slots/organization/:id", h.ListSlotsByOrg)
			shifts.GET("/slots/:id", h.GetSlot)
			shifts.POST("/slots", h.RequireManager(), h.CreateSlot)
			shifts.PUT("/slots/:id", h.RequireManager(), h.UpdateSlot)
			shifts.DELETE("/slots/:id", h.RequireManager(), h.DeleteSlot)
		}

		overrides := authed.Group("/overrides")
		{
			overrides.POST("", h.CreateOverride)
			overrides.GET("", h.ListOverrides)
			overrides.GET("/open", h.ListOpenOverrides)
			overrides.GET("/:id", h.GetOverride)
			overrides.GET("/shift/:id", h.GetOverridesByShift)
			overrides.POST("/:id/take", h.TakeOverride)
		}

		users := authed.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.GET("/:id", h.GetUser)
			users.GET("/role/:role", h.GetUsersByRole)
			users.DELETE("/:id", h.RequireManager(), h.DeleteUser)
		}

		keys := authed.Group("/keys")
		keys.Use(h.RequireManager())
		{
			keys.POST("", h.GenerateKey)
			keys.GET("", h.ListKeys)
			keys.PUT("/:id", h.UpdateKeyLimit)
			keys.DELETE("/:id", h.RevokeKey)
			keys.GET("/:id/usage", h.GetUsage)
		}
	}

	// Machine callers authenticate with an HMAC service key
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/calculate", h.CalculateShiftsAPI)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}
