package enums

import "strings"

// Availability is the half-day bucket doctors are filtered by.
type Availability string

const (
	AvailabilityAM Availability = "AM"
	AvailabilityPM Availability = "PM"
)

// ParseAvailability accepts "am"/"pm" in any case and surrounding spaces.
func ParseAvailability(s string) (Availability, bool) {
	switch Availability(strings.ToUpper(strings.TrimSpace(s))) {
	case AvailabilityAM:
		return AvailabilityAM, true
	case AvailabilityPM:
		return AvailabilityPM, true
	}
	return "", false
}
