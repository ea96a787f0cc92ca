package routes

import (
	"time"

	"github.com/Gidy30B/project02-sub000/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes registers availability submission and lookup endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/schedule")
	{
		api.POST("", hb.CreateScheduleHandler)
		api.PUT("", hb.UpdateScheduleHandler)
		api.GET("/:scheduleId", hb.GetScheduleHandler)
	}

	// Registered last so the static prefixes above take precedence.
	r.GET("/:professionalId/:date", hb.GetSlotsHandler)
}

// RegisterSlotRoutes registers the booking reconciliation endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/slots")
	{
		api.POST("/:slotId/book", hb.BookSlotHandler)
		api.POST("/:slotId/unbook", hb.UnbookSlotHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes sets up CORS and every endpoint group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterSlotRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
}
