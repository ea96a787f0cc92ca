package handlers

import (
	"net/http"

	"github.com/Gidy30B/project02-sub000/services/schedule"
	"github.com/Gidy30B/project02-sub000/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps scheduling error codes onto HTTP statuses.
func statusFor(code string) int {
	switch code {
	case schedule.CodeInvalidTimeFormat,
		schedule.CodeInvalidDateFormat,
		schedule.CodeInvalidShift,
		schedule.CodeInvalidShiftDuration,
		schedule.CodeInvalidBreakDefinition,
		schedule.CodeInvalidRecurrence,
		schedule.CodeOverlappingShifts,
		schedule.CodeInvalidRequest:
		return http.StatusBadRequest
	case schedule.CodeSlotNotFound, schedule.CodeScheduleNotFound:
		return http.StatusNotFound
	case schedule.CodeSlotAlreadyBooked, schedule.CodeSlotInPast, schedule.CodeDuplicateProfessional:
		return http.StatusConflict
	case schedule.CodeScheduleBusy, schedule.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := schedule.CodeOf(err)
	status := statusFor(code)
	resp := utils.ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		Retryable: schedule.IsRetryable(err),
	}
	if status == http.StatusInternalServerError {
		getLogger(c).Error("unexpected scheduling failure", zap.Error(err))
		resp.Error = "internal error"
		resp.Code = "INTERNAL"
	}
	utils.JSONError(c, status, resp)
}

func respondBindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, utils.ErrorResponse{
		Error: "Invalid request payload: " + err.Error(),
		Code:  schedule.CodeInvalidRequest,
	})
}
