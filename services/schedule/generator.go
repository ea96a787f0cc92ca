package schedule

import (
	"sort"
	"strings"

	"github.com/Gidy30B/project02-sub000/models"
)

// GenerateSlots turns one shift into its ordered, break-free slot intervals.
//
// A cursor walks from the shift start in steps of the consultation duration.
// A candidate that touches a break is dropped but still consumes its step, so
// slots after a break stay aligned to the shift start rather than the break end.
// Intervals are half-open: a break ending exactly where a slot starts does not
// overlap it.
func GenerateSlots(shift models.Shift) ([]models.Interval, error) {
	window, breaks, err := validateShift(shift)
	if err != nil {
		return nil, err
	}

	step := shift.ConsultationDurationMinutes
	var out []models.Interval
	for cursor := window.Start; step <= window.End-cursor; cursor += step {
		candidate := models.Interval{Start: cursor, End: cursor + step}
		if overlapsAny(candidate, breaks) {
			continue
		}
		candidate.Label = FormatClock(candidate.Start) + " - " + FormatClock(candidate.End)
		out = append(out, candidate)
	}
	return out, nil
}

func validateShift(shift models.Shift) (models.Interval, []models.Interval, error) {
	if shift.ConsultationDurationMinutes <= 0 {
		return models.Interval{}, nil, newError(ErrInvalidShiftDuration,
			"shift %q: consultation duration must be positive, got %d", shift.Name, shift.ConsultationDurationMinutes)
	}
	if strings.TrimSpace(shift.Name) == "" {
		return models.Interval{}, nil, newError(ErrInvalidShift, "shift name is required")
	}
	start, err := ParseClock(shift.StartTime)
	if err != nil {
		return models.Interval{}, nil, err
	}
	end, err := ParseClock(shift.EndTime)
	if err != nil {
		return models.Interval{}, nil, err
	}
	if start >= end {
		return models.Interval{}, nil, newError(ErrInvalidShift,
			"shift %q: start %s must be before end %s", shift.Name, shift.StartTime, shift.EndTime)
	}
	window := models.Interval{Start: start, End: end}

	breaks := make([]models.Interval, 0, len(shift.Breaks))
	for i, b := range shift.Breaks {
		bs, err := ParseClock(b.Start)
		if err != nil {
			return models.Interval{}, nil, err
		}
		be, err := ParseClock(b.End)
		if err != nil {
			return models.Interval{}, nil, err
		}
		if bs >= be {
			return models.Interval{}, nil, newError(ErrInvalidBreakDefinition,
				"shift %q: break %d start %s must be before end %s", shift.Name, i+1, b.Start, b.End)
		}
		if bs < start || be > end {
			return models.Interval{}, nil, newError(ErrInvalidBreakDefinition,
				"shift %q: break %d %s-%s lies outside %s-%s", shift.Name, i+1, b.Start, b.End, shift.StartTime, shift.EndTime)
		}
		breaks = append(breaks, models.Interval{Start: bs, End: be})
	}

	sorted := append([]models.Interval(nil), breaks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Overlaps(sorted[i-1]) {
			return models.Interval{}, nil, newError(ErrInvalidBreakDefinition,
				"shift %q: breaks %s-%s and %s-%s overlap", shift.Name,
				FormatClock(sorted[i-1].Start), FormatClock(sorted[i-1].End),
				FormatClock(sorted[i].Start), FormatClock(sorted[i].End))
		}
	}
	return window, breaks, nil
}

func overlapsAny(candidate models.Interval, others []models.Interval) bool {
	for _, o := range others {
		if candidate.Overlaps(o) {
			return true
		}
	}
	return false
}
