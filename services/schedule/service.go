package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Gidy30B/project02-sub000/database/locks"
	scheduleRepo "github.com/Gidy30B/project02-sub000/database/repository/schedule"
	"github.com/Gidy30B/project02-sub000/models"

	"go.uber.org/zap"
)

// SubmitAvailability expands the submitted shifts and merges them into the
// professional's schedule, creating it on first submission.
func (s *DefaultScheduleService) SubmitAvailability(ctx context.Context, req models.CreateScheduleRequest) (*models.Schedule, error) {
	professionalID := strings.TrimSpace(req.ProfessionalID)
	if err := validateProfessionalID(professionalID); err != nil {
		return nil, err
	}
	rule, err := ParseRecurrence(req.Recurrence)
	if err != nil {
		return nil, err
	}
	fresh, err := BuildAvailability(BuildRequest{
		Availability: req.Availability,
		Recurrence:   rule,
		HorizonDays:  s.HorizonDays,
	}, s.newID)
	if err != nil {
		return nil, err
	}

	release, err := s.lockDates(ctx, professionalID, fresh)
	if err != nil {
		return nil, err
	}
	defer release()

	for attempt := 1; attempt <= s.maxSaveAttempts(); attempt++ {
		current, err := s.Repo.GetByProfessionalID(ctx, professionalID)
		switch {
		case errors.Is(err, scheduleRepo.ErrNotFound):
			now := s.now().UTC()
			created := &models.Schedule{
				ID:             s.newID(),
				ProfessionalID: professionalID,
				Recurrence:     rule,
				Availability:   MergeAvailability(nil, fresh),
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			err = s.Repo.Create(ctx, created)
			if errors.Is(err, scheduleRepo.ErrDuplicateProfessional) {
				// Lost a create race; merge into the winner on the next round.
				continue
			}
			if err != nil {
				return nil, s.storeError("create schedule", err)
			}
			s.logger().Info("schedule created",
				zap.String("scheduleID", created.ID),
				zap.String("professionalID", professionalID),
				zap.Int("dates", len(fresh)))
			return created, nil
		case err != nil:
			return nil, s.storeError("load schedule", err)
		}

		current.Recurrence = rule
		current.Availability = MergeAvailability(current.Availability, fresh)
		current.UpdatedAt = s.now().UTC()
		err = s.Repo.Save(ctx, current)
		if errors.Is(err, scheduleRepo.ErrVersionConflict) {
			s.logger().Debug("schedule changed during merge; retrying",
				zap.String("scheduleID", current.ID), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, s.storeError("save schedule", err)
		}
		s.logger().Info("schedule merged",
			zap.String("scheduleID", current.ID),
			zap.String("professionalID", professionalID),
			zap.Int("dates", len(fresh)))
		return current, nil
	}
	return nil, newError(ErrScheduleBusy, "schedule for %s kept changing while merging", professionalID)
}

// UpdateSchedule applies a partial update addressed by schedule id.
func (s *DefaultScheduleService) UpdateSchedule(ctx context.Context, req models.UpdateScheduleRequest) (*models.Schedule, error) {
	if strings.TrimSpace(req.ScheduleID) == "" {
		return nil, newError(ErrInvalidRequest, "scheduleId is required")
	}
	existing, err := s.Repo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			return nil, newError(ErrScheduleNotFound, "schedule %s not found", req.ScheduleID)
		}
		return nil, s.storeError("load schedule", err)
	}

	rule := existing.Recurrence
	if req.Updates.Recurrence != nil {
		if rule, err = ParseRecurrence(*req.Updates.Recurrence); err != nil {
			return nil, err
		}
	}
	professionalID := existing.ProfessionalID
	if req.Updates.ProfessionalID != nil {
		professionalID = strings.TrimSpace(*req.Updates.ProfessionalID)
		if err := validateProfessionalID(professionalID); err != nil {
			return nil, err
		}
	}
	fresh, err := BuildAvailability(BuildRequest{
		Availability: req.Updates.Availability,
		Recurrence:   rule,
		HorizonDays:  s.HorizonDays,
	}, s.newID)
	if err != nil {
		return nil, err
	}

	if professionalID != existing.ProfessionalID {
		other, err := s.Repo.GetByProfessionalID(ctx, professionalID)
		if err == nil && other.ID != existing.ID {
			return nil, newError(ErrDuplicateProfessional, "professional %s already owns schedule %s", professionalID, other.ID)
		}
		if err != nil && !errors.Is(err, scheduleRepo.ErrNotFound) {
			return nil, s.storeError("check professional", err)
		}
	}

	// Locks follow the document's current owner: that is whom bookings lock by.
	release, err := s.lockDates(ctx, existing.ProfessionalID, fresh)
	if err != nil {
		return nil, err
	}
	defer release()

	for attempt := 1; attempt <= s.maxSaveAttempts(); attempt++ {
		current, err := s.Repo.GetByID(ctx, req.ScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrNotFound) {
				return nil, newError(ErrScheduleNotFound, "schedule %s not found", req.ScheduleID)
			}
			return nil, s.storeError("load schedule", err)
		}
		current.ProfessionalID = professionalID
		current.Recurrence = rule
		current.Availability = MergeAvailability(current.Availability, fresh)
		current.UpdatedAt = s.now().UTC()

		err = s.Repo.Save(ctx, current)
		switch {
		case errors.Is(err, scheduleRepo.ErrVersionConflict):
			continue
		case errors.Is(err, scheduleRepo.ErrDuplicateProfessional):
			return nil, newError(ErrDuplicateProfessional, "professional %s already has a schedule", professionalID)
		case err != nil:
			return nil, s.storeError("save schedule", err)
		}
		s.logger().Info("schedule updated",
			zap.String("scheduleID", current.ID),
			zap.String("professionalID", professionalID),
			zap.Int("dates", len(fresh)))
		return current, nil
	}
	return nil, newError(ErrScheduleBusy, "schedule %s kept changing while updating", req.ScheduleID)
}

func (s *DefaultScheduleService) GetSchedule(ctx context.Context, scheduleID string) (*models.Schedule, error) {
	sched, err := s.Repo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			return nil, newError(ErrScheduleNotFound, "schedule %s not found", scheduleID)
		}
		return nil, s.storeError("load schedule", err)
	}
	return sched, nil
}

// GetSlotsForDate returns every slot of the day, booked or not. Past slots are
// left in; filtering them is up to the caller.
func (s *DefaultScheduleService) GetSlotsForDate(ctx context.Context, professionalID, date string) ([]models.Slot, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	slots, err := s.Repo.GetSlotsForDate(ctx, professionalID, date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			return nil, newError(ErrScheduleNotFound, "no availability for %s on %s", professionalID, date)
		}
		return nil, s.storeError("load slots", err)
	}
	return slots, nil
}

// ReservedProfessionalIDs collide with the static route prefixes that share
// the root with GET /:professionalId/:date, so their days could never be read.
var ReservedProfessionalIDs = []string{"schedule", "slots", "health"}

func validateProfessionalID(professionalID string) error {
	if professionalID == "" {
		return newError(ErrInvalidRequest, "professionalId is required")
	}
	for _, reserved := range ReservedProfessionalIDs {
		if professionalID == reserved {
			return newError(ErrInvalidRequest, "professionalId %q is reserved", professionalID)
		}
	}
	return nil
}

func (s *DefaultScheduleService) lockDates(ctx context.Context, professionalID string, fresh map[string][]models.Slot) (func(), error) {
	if s.Locks == nil || len(fresh) == 0 {
		return func() {}, nil
	}
	keys := make([]string, 0, len(fresh))
	for date := range fresh {
		keys = append(keys, locks.ScheduleDateKey(professionalID, date))
	}
	sort.Strings(keys)
	release, err := locks.AcquireAll(ctx, s.Locks, keys)
	if err != nil {
		return nil, s.lockError(professionalID, err)
	}
	return release, nil
}

func (s *DefaultScheduleService) lockError(professionalID string, err error) error {
	if errors.Is(err, locks.ErrLockTimeout) {
		return newError(ErrScheduleBusy, "schedule for %s is locked by another request", professionalID)
	}
	s.logger().Error("lock backend failure", zap.String("professionalID", professionalID), zap.Error(err))
	return newError(ErrStoreUnavailable, "lock backend unavailable: %v", err)
}

// storeError maps repository failures onto the taxonomy; anything unexpected is
// wrapped and left for the 500 path.
func (s *DefaultScheduleService) storeError(op string, err error) error {
	switch {
	case errors.Is(err, scheduleRepo.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		s.logger().Warn("schedule store unavailable", zap.String("op", op), zap.Error(err))
		return newError(ErrStoreUnavailable, "%s: %v", op, err)
	default:
		s.logger().Error("schedule store failure", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
}
