package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gidy30B/project02-sub000/models"
	"github.com/Gidy30B/project02-sub000/services/schedule"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeAppointmentBooked    = "appointment:booked"
	TypeAppointmentCancelled = "appointment:cancelled"
)

// SlotReconciler is the part of the scheduling service the worker drives.
type SlotReconciler interface {
	BookSlot(ctx context.Context, slotID, appointmentID string) (*models.Slot, error)
	UnbookSlot(ctx context.Context, slotID string) (*models.Slot, error)
}

func newAppointmentTask(typ string, event models.AppointmentEvent) (*asynq.Task, error) {
	if event.SlotID == "" {
		return nil, fmt.Errorf("%s: slotId is required", typ)
	}
	b, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(typ, b), nil
}

// NewAppointmentBookedTask asks the worker to mark event.SlotID booked.
func NewAppointmentBookedTask(event models.AppointmentEvent) (*asynq.Task, error) {
	if event.AppointmentID == "" {
		return nil, fmt.Errorf("%s: appointmentId is required", TypeAppointmentBooked)
	}
	return newAppointmentTask(TypeAppointmentBooked, event)
}

// NewAppointmentCancelledTask asks the worker to free event.SlotID.
func NewAppointmentCancelledTask(event models.AppointmentEvent) (*asynq.Task, error) {
	return newAppointmentTask(TypeAppointmentCancelled, event)
}

// AppointmentHandlers processes appointment lifecycle events.
type AppointmentHandlers struct {
	Slots  SlotReconciler
	Logger *zap.Logger
}

func (h *AppointmentHandlers) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.NewNop()
}

func decodeEvent(task *asynq.Task) (models.AppointmentEvent, error) {
	var event models.AppointmentEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return event, fmt.Errorf("invalid %s payload: %v: %w", task.Type(), err, asynq.SkipRetry)
	}
	if event.SlotID == "" {
		return event, fmt.Errorf("%s payload has no slotId: %w", task.Type(), asynq.SkipRetry)
	}
	return event, nil
}

// outcome keeps retryable failures retryable and turns every other failure
// into a terminal one, so asynq does not replay a booking that can never succeed.
func (h *AppointmentHandlers) outcome(task *asynq.Task, event models.AppointmentEvent, err error) error {
	if err == nil {
		return nil
	}
	fields := []zap.Field{
		zap.String("type", task.Type()),
		zap.String("slotID", event.SlotID),
		zap.String("appointmentID", event.AppointmentID),
		zap.Error(err),
	}
	if schedule.IsRetryable(err) {
		h.logger().Warn("appointment event failed, will retry", fields...)
		return err
	}
	h.logger().Error("appointment event rejected", fields...)
	return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
}

// HandleAppointmentBooked marks the slot referenced by the event as booked.
func (h *AppointmentHandlers) HandleAppointmentBooked(ctx context.Context, task *asynq.Task) error {
	event, err := decodeEvent(task)
	if err != nil {
		h.logger().Error("dropping malformed event", zap.String("type", task.Type()), zap.Error(err))
		return err
	}
	_, err = h.Slots.BookSlot(ctx, event.SlotID, event.AppointmentID)
	return h.outcome(task, event, err)
}

// HandleAppointmentCancelled frees the slot referenced by the event.
func (h *AppointmentHandlers) HandleAppointmentCancelled(ctx context.Context, task *asynq.Task) error {
	event, err := decodeEvent(task)
	if err != nil {
		h.logger().Error("dropping malformed event", zap.String("type", task.Type()), zap.Error(err))
		return err
	}
	_, err = h.Slots.UnbookSlot(ctx, event.SlotID)
	return h.outcome(task, event, err)
}

// NewServeMux routes appointment task types to their handlers.
func NewServeMux(h *AppointmentHandlers) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAppointmentBooked, h.HandleAppointmentBooked)
	mux.HandleFunc(TypeAppointmentCancelled, h.HandleAppointmentCancelled)
	return mux
}
