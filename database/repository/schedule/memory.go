package scheduleRepo

import (
	"context"
	"sync"
	"time"

	"github.com/Gidy30B/project02-sub000/models"
)

// MemoryScheduleRepo keeps schedules in process. Every read and write copies,
// so callers never share slices with the store.
type MemoryScheduleRepo struct {
	mu             sync.RWMutex
	byID           map[string]*models.Schedule
	byProfessional map[string]string // professional ID -> schedule ID
}

var _ ScheduleRepository = (*MemoryScheduleRepo)(nil)

// NewMemoryScheduleRepo constructs an empty in-memory ScheduleRepository.
func NewMemoryScheduleRepo() *MemoryScheduleRepo {
	return &MemoryScheduleRepo{
		byID:           make(map[string]*models.Schedule),
		byProfessional: make(map[string]string),
	}
}

func (r *MemoryScheduleRepo) Create(_ context.Context, s *models.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byProfessional[s.ProfessionalID]; exists {
		return ErrDuplicateProfessional
	}
	s.Version = 1
	r.byID[s.ID] = s.Clone()
	r.byProfessional[s.ProfessionalID] = s.ID
	return nil
}

func (r *MemoryScheduleRepo) GetByID(_ context.Context, scheduleID string) (*models.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[scheduleID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (r *MemoryScheduleRepo) GetByProfessionalID(_ context.Context, professionalID string) (*models.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byProfessional[professionalID]
	if !ok {
		return nil, ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *MemoryScheduleRepo) Save(_ context.Context, s *models.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[s.ID]
	if !ok || stored.Version != s.Version {
		return ErrVersionConflict
	}
	if owner, taken := r.byProfessional[s.ProfessionalID]; taken && owner != s.ID {
		return ErrDuplicateProfessional
	}
	if stored.ProfessionalID != s.ProfessionalID {
		delete(r.byProfessional, stored.ProfessionalID)
		r.byProfessional[s.ProfessionalID] = s.ID
	}
	s.Version++
	r.byID[s.ID] = s.Clone()
	return nil
}

func (r *MemoryScheduleRepo) FindSlot(_ context.Context, slotID string) (*SlotLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, i, date := r.locate(slotID)
	if s == nil {
		return nil, ErrNotFound
	}
	return &SlotLocation{
		ScheduleID:     s.ID,
		ProfessionalID: s.ProfessionalID,
		Slot:           copySlot(s.Availability[date][i]),
	}, nil
}

func (r *MemoryScheduleRepo) GetSlotsForDate(_ context.Context, professionalID, date string) ([]models.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byProfessional[professionalID]
	if !ok {
		return nil, ErrNotFound
	}
	slots := r.byID[id].Availability[date]
	if len(slots) == 0 {
		return nil, ErrNotFound
	}
	out := make([]models.Slot, len(slots))
	for i, sl := range slots {
		out[i] = copySlot(sl)
	}
	return out, nil
}

func (r *MemoryScheduleRepo) MarkSlotBooked(_ context.Context, slotID, appointmentID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, i, date := r.locate(slotID)
	if s == nil {
		return nil, ErrNotFound
	}
	slot := &s.Availability[date][i]
	if slot.IsBooked {
		return nil, ErrSlotBooked
	}
	id := appointmentID
	slot.IsBooked = true
	slot.AppointmentID = &id
	s.Version++
	s.UpdatedAt = time.Now().UTC()
	out := copySlot(*slot)
	return &out, nil
}

func (r *MemoryScheduleRepo) MarkSlotFree(_ context.Context, slotID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, i, date := r.locate(slotID)
	if s == nil {
		return nil, ErrNotFound
	}
	slot := &s.Availability[date][i]
	if !slot.IsBooked {
		return nil, ErrSlotFree
	}
	slot.IsBooked = false
	slot.AppointmentID = nil
	s.Version++
	s.UpdatedAt = time.Now().UTC()
	out := copySlot(*slot)
	return &out, nil
}

// locate must be called with r.mu held.
func (r *MemoryScheduleRepo) locate(slotID string) (*models.Schedule, int, string) {
	for _, s := range r.byID {
		for date, slots := range s.Availability {
			for i := range slots {
				if slots[i].ID == slotID {
					return s, i, date
				}
			}
		}
	}
	return nil, 0, ""
}

func copySlot(sl models.Slot) models.Slot {
	if sl.AppointmentID != nil {
		id := *sl.AppointmentID
		sl.AppointmentID = &id
	}
	return sl
}
