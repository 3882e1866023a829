package booking

import (
	"fmt"
	"time"

	"ridebook/models"
)

// ValidationResult is the outcome of a gate function. Failures are values,
// never panics; the caller surfaces Error and blocks step progression.
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

func valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

func invalid(format string, args ...interface{}) ValidationResult {
	return ValidationResult{IsValid: false, Error: fmt.Sprintf(format, args...)}
}

// MinScheduleLead is the shortest allowed gap between now and a scheduled
// pickup. The bound is inclusive: exactly now+15m passes.
const MinScheduleLead = 15 * time.Minute

func pointPresent(l models.Location) bool {
	if l.TrimmedAddress() != "" {
		return true
	}
	return l.Lat != 0 || l.Lng != 0
}

func checkPoint(label string, l models.Location) ValidationResult {
	if !pointPresent(l) {
		return invalid("%s is missing an address or coordinates", label)
	}
	if !l.HasCoordinates() {
		return invalid("%s has coordinates out of range", label)
	}
	return valid()
}

// ValidatePickup checks presence and coordinate range of the pickup point.
func ValidatePickup(pickup *models.Location) ValidationResult {
	if pickup == nil {
		return invalid("Pickup is missing an address or coordinates")
	}
	return checkPoint("Pickup", *pickup)
}

// ValidateDestination checks presence and coordinate range of the drop point.
func ValidateDestination(destination *models.Location) ValidationResult {
	if destination == nil {
		return invalid("Destination is missing an address or coordinates")
	}
	return checkPoint("Destination", *destination)
}

// routeLabels names the ordered route points: Pickup, Stop 1..N, Destination.
func routeLabels(stopCount int) []string {
	labels := make([]string, 0, stopCount+2)
	labels = append(labels, "Pickup")
	for i := 0; i < stopCount; i++ {
		labels = append(labels, fmt.Sprintf("Stop %d", i+1))
	}
	return append(labels, "Destination")
}

// ValidateRouteSequence validates the full ordered route. Each point must be
// present with in-range coordinates. Adjacent duplicates are reported before
// the all-pairs scan because consecutive identical stops are the error the
// rider can actually act on; the generic scan then catches any remaining
// duplicate pair in index order.
func ValidateRouteSequence(pickup models.Location, stops []models.Location, destination models.Location) ValidationResult {
	points := make([]models.Location, 0, len(stops)+2)
	points = append(points, pickup)
	points = append(points, stops...)
	points = append(points, destination)
	labels := routeLabels(len(stops))

	for i, p := range points {
		if res := checkPoint(labels[i], p); !res.IsValid {
			return res
		}
	}

	for i := 0; i < len(points)-1; i++ {
		if points[i].SameAs(points[i+1]) {
			return invalid("%s cannot be the same as %s", labels[i], labels[i+1])
		}
	}

	// All-pairs scan; n is at most pickup + stops + destination, so the
	// quadratic cost is irrelevant.
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if points[i].SameAs(points[j]) {
				return invalid("%s is a duplicate of %s", labels[j], labels[i])
			}
		}
	}

	return valid()
}

// ValidateScheduledDateTimeAt checks the pickup time against a reference
// clock. Scheduling is mandatory; a nil time fails.
func ValidateScheduledDateTimeAt(dt *time.Time, now time.Time) ValidationResult {
	if dt == nil {
		return invalid("Please select a pickup time")
	}
	if dt.Before(now.Add(MinScheduleLead)) {
		return invalid("Pickup time must be at least 15 minutes from now")
	}
	return valid()
}

// ValidateScheduledDateTime checks the pickup time against the wall clock.
func ValidateScheduledDateTime(dt *time.Time) ValidationResult {
	return ValidateScheduledDateTimeAt(dt, time.Now())
}

// ValidateBookingForm runs the step gates in order and returns the first
// failure: pickup, destination, full route sequence, then schedule. Errors
// are not aggregated; callers must not assume independent field errors.
func ValidateBookingForm(state *models.BookingState) ValidationResult {
	if res := ValidatePickup(state.Pickup); !res.IsValid {
		return res
	}
	if res := ValidateDestination(state.Dropoff); !res.IsValid {
		return res
	}
	if res := ValidateRouteSequence(*state.Pickup, state.Stops, *state.Dropoff); !res.IsValid {
		return res
	}
	return ValidateScheduledDateTime(state.ScheduledAt)
}
