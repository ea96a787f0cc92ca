package models

// Interval is a half-open [Start, End) window in minutes from midnight.
type Interval struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label,omitempty"` // e.g., "09:00 - 09:30"
}

// Overlaps reports whether two half-open intervals share any minute.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}
