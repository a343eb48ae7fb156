package booking

import "strings"

// unavailablePhrases mark a slot as not bookable when found in its
// availability text, compared case-insensitively.
var unavailablePhrases = []string{
	"no free spots",
	"unavailable",
	"next available",
	"the next available reservation",
}

// IsBookable reports whether a slot can actually be reserved. Empty
// availability text is not bookable.
func IsBookable(slot CourtSlot) bool {
	text := strings.ToLower(strings.TrimSpace(slot.Availability))
	if text == "" {
		return false
	}
	for _, phrase := range unavailablePhrases {
		if strings.Contains(text, phrase) {
			return false
		}
	}
	return true
}

// HasAvailability reports whether at least one slot is bookable.
func (s CourtSlotSet) HasAvailability() bool {
	for _, slot := range s {
		if IsBookable(slot) {
			return true
		}
	}
	return false
}

// Bookable returns the bookable slots in display order.
func (s CourtSlotSet) Bookable() CourtSlotSet {
	var out CourtSlotSet
	for _, slot := range s {
		if IsBookable(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// FallbackPlan returns the alternative bands tried, in order, when t has no
// availability.
func FallbackPlan(t TimeOfDay) []TimeOfDay {
	switch t {
	case Morning:
		return []TimeOfDay{Afternoon, Evening}
	case Afternoon:
		return []TimeOfDay{Morning, Evening}
	default:
		return []TimeOfDay{Morning, Afternoon}
	}
}
