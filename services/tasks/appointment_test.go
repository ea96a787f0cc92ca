package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Gidy30B/project02-sub000/models"
	"github.com/Gidy30B/project02-sub000/services/schedule"

	"github.com/hibiken/asynq"
)

type fakeReconciler struct {
	bookErr   error
	unbookErr error
	booked    []models.AppointmentEvent
	unbooked  []string
}

func (f *fakeReconciler) BookSlot(_ context.Context, slotID, appointmentID string) (*models.Slot, error) {
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	f.booked = append(f.booked, models.AppointmentEvent{SlotID: slotID, AppointmentID: appointmentID})
	return &models.Slot{ID: slotID, IsBooked: true, AppointmentID: &appointmentID}, nil
}

func (f *fakeReconciler) UnbookSlot(_ context.Context, slotID string) (*models.Slot, error) {
	if f.unbookErr != nil {
		return nil, f.unbookErr
	}
	f.unbooked = append(f.unbooked, slotID)
	return &models.Slot{ID: slotID}, nil
}

func TestNewAppointmentBookedTask(t *testing.T) {
	task, err := NewAppointmentBookedTask(models.AppointmentEvent{SlotID: "slot-1", AppointmentID: "appt-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TypeAppointmentBooked {
		t.Errorf("expected %s, got %s", TypeAppointmentBooked, task.Type())
	}
	var event models.AppointmentEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if event.SlotID != "slot-1" || event.AppointmentID != "appt-1" {
		t.Errorf("unexpected payload: %+v", event)
	}

	if _, err := NewAppointmentBookedTask(models.AppointmentEvent{SlotID: "slot-1"}); err == nil {
		t.Error("expected error without appointmentId")
	}
	if _, err := NewAppointmentCancelledTask(models.AppointmentEvent{}); err == nil {
		t.Error("expected error without slotId")
	}
}

func TestHandleAppointmentBooked(t *testing.T) {
	fake := &fakeReconciler{}
	h := &AppointmentHandlers{Slots: fake}
	task, _ := NewAppointmentBookedTask(models.AppointmentEvent{SlotID: "slot-1", AppointmentID: "appt-1"})

	if err := h.HandleAppointmentBooked(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.booked) != 1 || fake.booked[0].AppointmentID != "appt-1" {
		t.Errorf("expected one booking, got %+v", fake.booked)
	}
}

func TestHandleAppointmentBooked_ConflictSkipsRetry(t *testing.T) {
	h := &AppointmentHandlers{Slots: &fakeReconciler{bookErr: schedule.ErrSlotAlreadyBooked}}
	task, _ := NewAppointmentBookedTask(models.AppointmentEvent{SlotID: "slot-1", AppointmentID: "appt-1"})

	err := h.HandleAppointmentBooked(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("expected SkipRetry, got %v", err)
	}
	if !errors.Is(err, schedule.ErrSlotAlreadyBooked) {
		t.Errorf("expected the scheduling error to stay visible, got %v", err)
	}
}

func TestHandleAppointmentBooked_RetryableIsRetried(t *testing.T) {
	h := &AppointmentHandlers{Slots: &fakeReconciler{bookErr: schedule.ErrStoreUnavailable}}
	task, _ := NewAppointmentBookedTask(models.AppointmentEvent{SlotID: "slot-1", AppointmentID: "appt-1"})

	err := h.HandleAppointmentBooked(context.Background(), task)
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Errorf("expected a retryable error, got %v", err)
	}
}

func TestHandleAppointmentCancelled(t *testing.T) {
	fake := &fakeReconciler{}
	h := &AppointmentHandlers{Slots: fake}
	task, _ := NewAppointmentCancelledTask(models.AppointmentEvent{SlotID: "slot-9"})

	if err := h.HandleAppointmentCancelled(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.unbooked) != 1 || fake.unbooked[0] != "slot-9" {
		t.Errorf("expected slot-9 released, got %v", fake.unbooked)
	}
}

func TestHandleAppointmentCancelled_MalformedPayload(t *testing.T) {
	h := &AppointmentHandlers{Slots: &fakeReconciler{}}
	task := asynq.NewTask(TypeAppointmentCancelled, []byte("{not json"))

	if err := h.HandleAppointmentCancelled(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("expected SkipRetry for malformed payload, got %v", err)
	}
}
