package handlers

import (
	"net/http"

	"github.com/Gidy30B/project02-sub000/models"
	"github.com/Gidy30B/project02-sub000/services/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the scheduling service over HTTP.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// CreateScheduleHandler handles POST /schedule.
func (h *ScheduleHandler) CreateScheduleHandler(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sched, err := h.Service.SubmitAvailability(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sched)
}

// UpdateScheduleHandler handles PUT /schedule.
func (h *ScheduleHandler) UpdateScheduleHandler(c *gin.Context) {
	var req models.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sched, err := h.Service.UpdateSchedule(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// GetScheduleHandler handles GET /schedule/:scheduleId.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	sched, err := h.Service.GetSchedule(c.Request.Context(), c.Param("scheduleId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// GetSlotsHandler handles GET /:professionalId/:date.
func (h *ScheduleHandler) GetSlotsHandler(c *gin.Context) {
	slots, err := h.Service.GetSlotsForDate(c.Request.Context(), c.Param("professionalId"), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SlotsResponse{Slots: slots})
}

// BookSlotHandler handles POST /slots/:slotId/book.
func (h *ScheduleHandler) BookSlotHandler(c *gin.Context) {
	var req models.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	slot, err := h.Service.BookSlot(c.Request.Context(), c.Param("slotId"), req.AppointmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Debug("slot booked over HTTP", zap.String("slotID", slot.ID))
	c.JSON(http.StatusOK, slot)
}

// UnbookSlotHandler handles POST /slots/:slotId/unbook.
func (h *ScheduleHandler) UnbookSlotHandler(c *gin.Context) {
	slot, err := h.Service.UnbookSlot(c.Request.Context(), c.Param("slotId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}
