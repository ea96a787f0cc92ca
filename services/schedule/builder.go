package schedule

import (
	"fmt"
	"sort"

	"github.com/Gidy30B/project02-sub000/models"

	"github.com/google/uuid"
)

// BuildRequest is one submission of shifts for a professional.
type BuildRequest struct {
	Availability map[string][]models.Shift
	Recurrence   models.Recurrence
	HorizonDays  int
}

// BuildAvailability expands every (date, shift) pair into concrete slots keyed
// by target date. Nothing is returned unless every shift in the batch is valid
// and no two generated slots on the same date overlap. A nil newID uses UUIDs.
func BuildAvailability(req BuildRequest, newID func() string) (map[string][]models.Slot, error) {
	if newID == nil {
		newID = uuid.NewString
	}
	rule, err := ParseRecurrence(req.Recurrence)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(req.Availability))
	for date := range req.Availability {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make(map[string][]models.Slot)
	for _, date := range dates {
		day, err := ParseDate(date)
		if err != nil {
			return nil, err
		}
		targets, err := ExpandDates(day, rule, req.HorizonDays)
		if err != nil {
			return nil, err
		}
		for i, shift := range req.Availability[date] {
			intervals, err := GenerateSlots(shift)
			if err != nil {
				return nil, fmt.Errorf("availability[%s][%d]: %w", date, i, err)
			}
			for _, target := range targets {
				key := FormatDate(target)
				for _, iv := range intervals {
					out[key] = append(out[key], models.Slot{
						ID:        newID(),
						Date:      key,
						StartTime: FormatClock(iv.Start),
						EndTime:   FormatClock(iv.End),
						Start:     iv.Start,
						End:       iv.End,
						ShiftName: shift.Name,
					})
				}
			}
		}
	}

	keys := make([]string, 0, len(out))
	for key := range out {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		slots := out[key]
		sortSlots(slots)
		for i := 1; i < len(slots); i++ {
			prev, cur := slotInterval(slots[i-1]), slotInterval(slots[i])
			if cur.Overlaps(prev) {
				return nil, newError(ErrOverlappingShifts, "%s: %s-%s (%s) overlaps %s-%s (%s)", key,
					slots[i-1].StartTime, slots[i-1].EndTime, slots[i-1].ShiftName,
					slots[i].StartTime, slots[i].EndTime, slots[i].ShiftName)
			}
		}
	}
	return out, nil
}

// MergeDay regenerates one date: booked slots survive verbatim, unbooked ones
// are replaced by fresh. A fresh slot that collides with a booked one is dropped.
func MergeDay(existing, fresh []models.Slot) []models.Slot {
	merged := make([]models.Slot, 0, len(fresh))
	var booked []models.Interval
	for _, s := range existing {
		if s.IsBooked {
			merged = append(merged, s)
			booked = append(booked, slotInterval(s))
		}
	}
	for _, s := range fresh {
		if overlapsAny(slotInterval(s), booked) {
			continue
		}
		merged = append(merged, s)
	}
	sortSlots(merged)
	return merged
}

// MergeAvailability applies MergeDay to every date present in fresh and leaves
// other dates untouched. current is modified in place and returned.
func MergeAvailability(current, fresh map[string][]models.Slot) map[string][]models.Slot {
	if current == nil {
		current = make(map[string][]models.Slot, len(fresh))
	}
	for date, slots := range fresh {
		current[date] = MergeDay(current[date], slots)
	}
	return current
}

func sortSlots(slots []models.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slotInterval(slots[i]).Start < slotInterval(slots[j]).Start
	})
}

// slotInterval prefers the stored minute offsets and falls back to parsing the
// clock strings for documents written without them.
func slotInterval(s models.Slot) models.Interval {
	if s.End > s.Start {
		return models.Interval{Start: s.Start, End: s.End}
	}
	start, errS := ParseClock(s.StartTime)
	end, errE := ParseClock(s.EndTime)
	if errS != nil || errE != nil {
		return models.Interval{Start: s.Start, End: s.End}
	}
	return models.Interval{Start: start, End: end}
}
