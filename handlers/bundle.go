package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Schedule endpoints
	CreateScheduleHandler gin.HandlerFunc
	UpdateScheduleHandler gin.HandlerFunc
	GetScheduleHandler    gin.HandlerFunc
	GetSlotsHandler       gin.HandlerFunc

	// Booking reconciliation endpoints
	BookSlotHandler   gin.HandlerFunc
	UnbookSlotHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from a schedule handler.
func NewHandlerBundle(h *ScheduleHandler) *HandlerBundle {
	return &HandlerBundle{
		CreateScheduleHandler: h.CreateScheduleHandler,
		UpdateScheduleHandler: h.UpdateScheduleHandler,
		GetScheduleHandler:    h.GetScheduleHandler,
		GetSlotsHandler:       h.GetSlotsHandler,
		BookSlotHandler:       h.BookSlotHandler,
		UnbookSlotHandler:     h.UnbookSlotHandler,
		HealthHandler:         HealthHandler,
	}
}
