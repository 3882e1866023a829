package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ridebook/models"

	"go.uber.org/zap"
)

type stubSubmitter struct {
	got  *models.PickupScheduleRequest
	resp *models.PickupScheduleResponse
	err  error
}

func (s *stubSubmitter) InsertPickupSchedule(ctx context.Context, session *models.Session, req models.PickupScheduleRequest) (*models.PickupScheduleResponse, error) {
	s.got = &req
	return s.resp, s.err
}

func authedSession() *models.Session {
	return &models.Session{
		SessionID:             "sid",
		SessionIdentifier:     "sident",
		UserSessionID:         "usid",
		UserSessionIdentifier: "usident",
		UserID:                "u1",
	}
}

func readyState() models.BookingState {
	pickup := loc("A St", 1, 1)
	drop := loc("B St", 2, 2)
	dt := time.Now().Add(time.Hour)
	return models.BookingState{
		SelectedRegion: &models.VehicleRegion{
			RegionID:       12,
			VehicleType:    3,
			RegionName:     "Sedan",
			Fare:           25,
			CurrencySymbol: "$",
		},
		SelectedServiceID: 7,
		Pickup:            &pickup,
		Dropoff:           &drop,
		ScheduledAt:       &dt,
	}
}

func TestBuildPickupScheduleRequestPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		session *models.Session
		mutate  func(*models.BookingState)
		want    string
	}{
		{"nil session", nil, func(s *models.BookingState) {}, "Missing session details"},
		{"half session pair", &models.Session{SessionID: "sid"}, func(s *models.BookingState) {}, "Missing session details"},
		{"no region", authedSession(), func(s *models.BookingState) { s.SelectedRegion = nil }, "No region selected"},
		{"no service", authedSession(), func(s *models.BookingState) { s.SelectedServiceID = 0 }, "No service selected"},
		{"no pickup", authedSession(), func(s *models.BookingState) { s.Pickup = nil }, "Pickup location is incomplete"},
		{"no dropoff", authedSession(), func(s *models.BookingState) { s.Dropoff = nil }, "Drop location is incomplete"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := readyState()
			tc.mutate(&state)
			_, err := BuildPickupScheduleRequest(state, tc.session, zap.NewNop())
			if err == nil {
				t.Fatal("expected a precondition error")
			}
			var pre *PreconditionError
			if !errors.As(err, &pre) {
				t.Fatalf("error type = %T, want *PreconditionError", err)
			}
			if pre.Message != tc.want {
				t.Fatalf("message = %q, want %q", pre.Message, tc.want)
			}
		})
	}
}

func TestBuildPickupScheduleRequestPaymentModes(t *testing.T) {
	tests := []struct {
		method     models.PaymentMethod
		stripeCard string
		squareCard string
		wantMode   int
		wantCard   string
	}{
		{models.PaymentMethodCash, "", "", 1, ""},
		{models.PaymentMethodStripeCard, "card_s", "", 9, "card_s"},
		{models.PaymentMethodSquareCard, "", "card_q", 73, "card_q"},
		{models.PaymentMethod("apple_pay"), "", "", 1, ""},
		{models.PaymentMethod(""), "", "", 1, ""},
	}
	for _, tc := range tests {
		t.Run(string(tc.method), func(t *testing.T) {
			state := readyState()
			state.PaymentMethod = tc.method
			state.SelectedCardID = tc.stripeCard
			state.SelectedSquareCardID = tc.squareCard
			req, err := BuildPickupScheduleRequest(state, authedSession(), zap.NewNop())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.PaymentMode != tc.wantMode {
				t.Fatalf("payment mode = %d, want %d", req.PaymentMode, tc.wantMode)
			}
			if req.CardID != tc.wantCard {
				t.Fatalf("card id = %q, want %q", req.CardID, tc.wantCard)
			}
		})
	}
}

func TestResolveCouponAccount(t *testing.T) {
	account := 77
	promos := []models.Promotion{
		{ID: 1, Type: models.PromoTypeAutosCoupon, AutosCoupon: &models.AutosCouponPayload{AccountID: &account}},
		{ID: 2, Type: models.PromoTypePromoCode, PromoCode: &models.PromoCodePayload{Code: "SAVE10"}},
	}

	applied := 1
	got := ResolveCouponAccount(&applied, promos)
	if got == nil || *got != 77 {
		t.Fatalf("autos_coupon promotion should forward account id 77, got %v", got)
	}

	applied = 2
	if got := ResolveCouponAccount(&applied, promos); got != nil {
		t.Fatalf("promo_code promotion must forward nothing, got %v", got)
	}

	applied = 99
	if got := ResolveCouponAccount(&applied, promos); got != nil {
		t.Fatalf("unknown promotion id must forward nothing, got %v", got)
	}

	if got := ResolveCouponAccount(nil, promos); got != nil {
		t.Fatalf("no applied promotion must forward nothing, got %v", got)
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("US", "2025550123", zap.NewNop()); got != "+12025550123" {
		t.Fatalf("US normalization = %q, want +12025550123", got)
	}
	if got := NormalizePhone("gb", "7700900123", zap.NewNop()); got != "+447700900123" {
		t.Fatalf("lowercase region = %q, want +447700900123", got)
	}
	// Unresolvable region falls back to raw concatenation instead of failing.
	if got := NormalizePhone("XX", "12345", zap.NewNop()); got != "XX12345" {
		t.Fatalf("fallback = %q, want XX12345", got)
	}
}

func TestSubmitPickupScheduleSuccessResetsDraft(t *testing.T) {
	store := NewStore("draft-submit-ok", nil, zap.NewNop())
	state := readyState()
	store.SelectRegion(state.SelectedRegion, state.SelectedServiceID)
	store.SetPickup(state.Pickup)
	store.SetDropoff(state.Dropoff)
	store.SetSchedule(state.ScheduledAt)

	sub := &stubSubmitter{resp: &models.PickupScheduleResponse{Flag: 200, BookingID: "4242"}}
	o := &Orchestrator{Store: store, Dispatch: sub, Logger: zap.NewNop()}

	resp, err := o.SubmitPickupSchedule(context.Background(), authedSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.BookingID != "4242" {
		t.Fatalf("booking id = %q, want 4242", resp.BookingID)
	}
	if sub.got == nil {
		t.Fatal("request never reached the dispatcher")
	}
	if after := store.Snapshot(); after.Pickup != nil || after.SelectedRegion != nil {
		t.Fatal("draft must be cleared after a successful submission")
	}
	if store.Submitting() {
		t.Fatal("submitting flag must be cleared")
	}
}

func TestSubmitPickupScheduleFailurePropagatesAndKeepsDraft(t *testing.T) {
	store := NewStore("draft-submit-fail", nil, zap.NewNop())
	state := readyState()
	store.SelectRegion(state.SelectedRegion, state.SelectedServiceID)
	store.SetPickup(state.Pickup)
	store.SetDropoff(state.Dropoff)
	store.SetSchedule(state.ScheduledAt)

	sub := &stubSubmitter{err: errors.New("no drivers available in this area")}
	o := &Orchestrator{Store: store, Dispatch: sub, Logger: zap.NewNop()}

	_, err := o.SubmitPickupSchedule(context.Background(), authedSession())
	if err == nil {
		t.Fatal("expected the remote error to propagate")
	}
	if !strings.Contains(err.Error(), "no drivers available") {
		t.Fatalf("remote error must pass through unmodified, got %q", err)
	}
	if after := store.Snapshot(); after.Pickup == nil {
		t.Fatal("draft must survive a failed submission")
	}
	if store.Submitting() {
		t.Fatal("submitting flag must be cleared even on failure")
	}
}
