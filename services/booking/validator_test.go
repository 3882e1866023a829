package booking

import (
	"strings"
	"testing"
	"time"

	"ridebook/models"
)

func loc(address string, lat, lng float64) models.Location {
	return models.Location{Address: address, Lat: lat, Lng: lng}
}

func TestValidateRouteSequenceUniqueAddressesPass(t *testing.T) {
	res := ValidateRouteSequence(
		loc("A St", 1, 1),
		[]models.Location{loc("B St", 2, 2), loc("C St", 3, 3)},
		loc("D St", 4, 4),
	)
	if !res.IsValid {
		t.Fatalf("expected valid route, got error %q", res.Error)
	}
}

func TestValidateRouteSequenceAdjacentDuplicateNamesEarlierPoint(t *testing.T) {
	tests := []struct {
		name    string
		stops   []models.Location
		dest    models.Location
		wantIn  string
	}{
		{
			name:   "pickup equals first stop",
			stops:  []models.Location{loc("A St", 9, 9)},
			dest:   loc("B St", 2, 2),
			wantIn: "Pickup cannot be the same as Stop 1",
		},
		{
			name:   "stop equals destination",
			stops:  []models.Location{loc("B St", 2, 2)},
			dest:   loc("B St", 2, 2),
			wantIn: "Stop 1 cannot be the same as Destination",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidateRouteSequence(loc("A St", 1, 1), tc.stops, tc.dest)
			if res.IsValid {
				t.Fatal("expected duplicate to fail validation")
			}
			if res.Error != tc.wantIn {
				t.Fatalf("error = %q, want %q", res.Error, tc.wantIn)
			}
		})
	}
}

func TestValidateRouteSequenceNonAdjacentDuplicateNamesLaterPoint(t *testing.T) {
	res := ValidateRouteSequence(
		loc("A St", 1, 1),
		[]models.Location{loc("B St", 2, 2)},
		loc("A St", 1, 1),
	)
	if res.IsValid {
		t.Fatal("expected duplicate to fail validation")
	}
	if res.Error != "Destination is a duplicate of Pickup" {
		t.Fatalf("unexpected error %q", res.Error)
	}
}

func TestValidateRouteSequenceAdjacentReportedBeforeAllPairs(t *testing.T) {
	// Pickup duplicates the destination (non-adjacent) AND stop 1 duplicates
	// stop 2 (adjacent); the adjacent pair must win.
	res := ValidateRouteSequence(
		loc("A St", 1, 1),
		[]models.Location{loc("B St", 2, 2), loc("B St", 2, 2)},
		loc("A St", 1, 1),
	)
	if res.IsValid {
		t.Fatal("expected duplicates to fail validation")
	}
	if res.Error != "Stop 1 cannot be the same as Stop 2" {
		t.Fatalf("adjacent duplicate not reported first, got %q", res.Error)
	}
}

func TestValidateRouteSequenceCoordinateRange(t *testing.T) {
	res := ValidateRouteSequence(
		loc("", 95, 10),
		nil,
		loc("B St", 2, 2),
	)
	if res.IsValid {
		t.Fatal("expected out-of-range pickup to fail")
	}
	if !strings.Contains(res.Error, "Pickup") {
		t.Fatalf("error should name the pickup, got %q", res.Error)
	}
}

func TestLocationEqualityAddressPrecedence(t *testing.T) {
	// Same coordinates but different non-empty addresses: not equal.
	a := loc("A St", 5, 5)
	b := loc("B St", 5, 5)
	if a.SameAs(b) {
		t.Fatal("different addresses at same coordinates must not be equal")
	}

	// Same address, different coordinates: equal by address precedence.
	c := loc("A St", 1, 1)
	if !a.SameAs(c) {
		t.Fatal("identical addresses must be equal regardless of coordinates")
	}

	// One side has an address, the other doesn't: never equal.
	d := loc("", 5, 5)
	if a.SameAs(d) || d.SameAs(a) {
		t.Fatal("address vs no-address must never be equal")
	}

	// Neither side has an address: coordinate fallback.
	e := loc("", 5, 5)
	if !d.SameAs(e) {
		t.Fatal("coordinate fallback should match identical coordinates")
	}
}

func TestValidateScheduledDateTimeBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	exact := now.Add(15 * time.Minute)
	if res := ValidateScheduledDateTimeAt(&exact, now); !res.IsValid {
		t.Fatalf("exactly now+15m must pass, got %q", res.Error)
	}

	early := now.Add(15*time.Minute - time.Millisecond)
	if res := ValidateScheduledDateTimeAt(&early, now); res.IsValid {
		t.Fatal("now+15m-1ms must fail")
	}

	if res := ValidateScheduledDateTimeAt(nil, now); res.IsValid {
		t.Fatal("nil schedule must fail; scheduling is mandatory")
	}
}

func TestValidateBookingFormScenarioA(t *testing.T) {
	same := loc("A", 10, 10)
	dt := time.Now().Add(time.Hour)
	state := models.BookingState{
		Pickup:      &same,
		Dropoff:     &same,
		ScheduledAt: &dt,
	}
	res := ValidateBookingForm(&state)
	if res.IsValid {
		t.Fatal("identical pickup and destination must fail")
	}
	if !strings.Contains(res.Error, "cannot be the same as") {
		t.Fatalf("expected a cannot-be-the-same-as error, got %q", res.Error)
	}
	if !strings.Contains(res.Error, "Pickup") || !strings.Contains(res.Error, "Destination") {
		t.Fatalf("error should reference Pickup and Destination, got %q", res.Error)
	}
}

func TestValidateBookingFormScenarioB(t *testing.T) {
	pickup := loc("", 10, 10)
	drop := loc("", 20, 20)
	dt := time.Now().Add(time.Hour)
	state := models.BookingState{
		Pickup:      &pickup,
		Dropoff:     &drop,
		Stops:       []models.Location{loc("", 10, 10)},
		ScheduledAt: &dt,
	}
	res := ValidateBookingForm(&state)
	if res.IsValid {
		t.Fatal("stop identical to pickup by coordinates must fail")
	}
	if !strings.Contains(res.Error, "Stop 1") {
		t.Fatalf("coordinate-fallback duplicate should name the stop, got %q", res.Error)
	}
}

func TestValidateBookingFormIdempotent(t *testing.T) {
	pickup := loc("A St", 1, 1)
	drop := loc("B St", 2, 2)
	dt := time.Now().Add(time.Hour)
	state := models.BookingState{
		Pickup:      &pickup,
		Dropoff:     &drop,
		ScheduledAt: &dt,
	}
	first := ValidateBookingForm(&state)
	second := ValidateBookingForm(&state)
	if first != second {
		t.Fatalf("validation not idempotent: %+v vs %+v", first, second)
	}
	if !first.IsValid {
		t.Fatalf("expected valid form, got %q", first.Error)
	}
}

func TestValidateBookingFormOrder(t *testing.T) {
	// Both pickup and schedule are invalid; the pickup failure must win.
	state := models.BookingState{}
	res := ValidateBookingForm(&state)
	if res.IsValid {
		t.Fatal("empty form must fail")
	}
	if !strings.Contains(res.Error, "Pickup") {
		t.Fatalf("pickup must be validated first, got %q", res.Error)
	}
}
