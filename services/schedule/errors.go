package schedule

import (
	"errors"
	"fmt"
)

// Error codes surfaced to callers.
const (
	CodeInvalidTimeFormat      = "INVALID_TIME_FORMAT"
	CodeInvalidDateFormat      = "INVALID_DATE_FORMAT"
	CodeInvalidShift           = "INVALID_SHIFT"
	CodeInvalidShiftDuration   = "INVALID_SHIFT_DURATION"
	CodeInvalidBreakDefinition = "INVALID_BREAK_DEFINITION"
	CodeInvalidRecurrence      = "INVALID_RECURRENCE"
	CodeOverlappingShifts      = "OVERLAPPING_SHIFTS"
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeSlotNotFound           = "SLOT_NOT_FOUND"
	CodeSlotAlreadyBooked      = "SLOT_ALREADY_BOOKED"
	CodeSlotInPast             = "SLOT_IN_PAST"
	CodeScheduleNotFound       = "SCHEDULE_NOT_FOUND"
	CodeDuplicateProfessional  = "DUPLICATE_PROFESSIONAL"
	CodeScheduleBusy           = "SCHEDULE_BUSY"
	CodeStoreUnavailable       = "STORE_UNAVAILABLE"
)

// SchedulingError carries a stable code next to a human readable message.
type SchedulingError struct {
	Code      string
	Message   string
	Retryable bool
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on code so wrapped errors compare equal to the sentinels below.
func (e *SchedulingError) Is(target error) bool {
	t, ok := target.(*SchedulingError)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidTimeFormat      = &SchedulingError{Code: CodeInvalidTimeFormat, Message: "time must be HH:mm"}
	ErrInvalidDateFormat      = &SchedulingError{Code: CodeInvalidDateFormat, Message: "date must be YYYY-MM-DD"}
	ErrInvalidShift           = &SchedulingError{Code: CodeInvalidShift, Message: "invalid shift"}
	ErrInvalidShiftDuration   = &SchedulingError{Code: CodeInvalidShiftDuration, Message: "consultation duration must be positive"}
	ErrInvalidBreakDefinition = &SchedulingError{Code: CodeInvalidBreakDefinition, Message: "invalid break"}
	ErrInvalidRecurrence      = &SchedulingError{Code: CodeInvalidRecurrence, Message: "unknown recurrence"}
	ErrOverlappingShifts      = &SchedulingError{Code: CodeOverlappingShifts, Message: "shifts overlap"}
	ErrInvalidRequest         = &SchedulingError{Code: CodeInvalidRequest, Message: "invalid request"}
	ErrSlotNotFound           = &SchedulingError{Code: CodeSlotNotFound, Message: "slot not found"}
	ErrSlotAlreadyBooked      = &SchedulingError{Code: CodeSlotAlreadyBooked, Message: "slot is already booked"}
	ErrSlotInPast             = &SchedulingError{Code: CodeSlotInPast, Message: "slot has already started"}
	ErrScheduleNotFound       = &SchedulingError{Code: CodeScheduleNotFound, Message: "schedule not found"}
	ErrDuplicateProfessional  = &SchedulingError{Code: CodeDuplicateProfessional, Message: "professional already has a schedule"}
	ErrScheduleBusy           = &SchedulingError{Code: CodeScheduleBusy, Message: "schedule is being modified, try again", Retryable: true}
	ErrStoreUnavailable       = &SchedulingError{Code: CodeStoreUnavailable, Message: "schedule store unavailable, try again", Retryable: true}
)

func newError(base *SchedulingError, format string, args ...interface{}) error {
	return &SchedulingError{
		Code:      base.Code,
		Message:   fmt.Sprintf(format, args...),
		Retryable: base.Retryable,
	}
}

// CodeOf extracts the error code, or "" for errors outside the taxonomy.
func CodeOf(err error) string {
	var se *SchedulingError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsRetryable reports whether the caller should retry the same request unchanged.
func IsRetryable(err error) bool {
	var se *SchedulingError
	return errors.As(err, &se) && se.Retryable
}
