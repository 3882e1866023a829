package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ridebook/config"
	"ridebook/models"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"
)

// Orchestrator turns the current draft into dispatch calls. Its contract is
// exactly the request shaping: the dispatch backend is fixed and external, so
// every field mapping here has to stay bit-exact.
type Orchestrator struct {
	Store     *Store
	Dispatch  ScheduleSubmitter
	Finder    DriverFinder
	Records   BookingRecorder
	Reminders ReminderScheduler
	Recents   RecentLocationSaver
	Logger    *zap.Logger
}

// NormalizePhone resolves an ISO alpha-2 region to its international calling
// code and prefixes the phone with it. Resolution failure downgrades to
// concatenating the raw country code string with the digits; the submission
// proceeds on a warning rather than failing on a lookup miss.
func NormalizePhone(countryCode, phone string, logger *zap.Logger) string {
	region := strings.ToUpper(strings.TrimSpace(countryCode))
	if region == "" {
		region = config.AppConfig.DefaultCountryCode
	}
	if region == "" {
		region = "US"
	}
	digits := strings.TrimSpace(phone)
	if code := phonenumbers.GetCountryCodeForRegion(region); code != 0 {
		return fmt.Sprintf("+%d%s", code, digits)
	}
	if logger != nil {
		logger.Warn("could not resolve calling code, using raw country code",
			zap.String("countryCode", countryCode))
	}
	return countryCode + digits
}

// ResolveCouponAccount looks the applied promotion up in the known list. Only
// an autos_coupon promotion maps onto a coupon account id; any other type
// forwards nothing even though a promotion is "applied".
func ResolveCouponAccount(applied *int, promos []models.Promotion) *int {
	if applied == nil {
		return nil
	}
	for _, p := range promos {
		if p.ID != *applied {
			continue
		}
		if p.Type == models.PromoTypeAutosCoupon && p.AutosCoupon != nil {
			return p.AutosCoupon.AccountID
		}
		return nil
	}
	return nil
}

// BuildPickupScheduleRequest shapes the outbound submission from a draft.
// Precondition failures each carry their own message so the UI can name the
// missing piece.
func BuildPickupScheduleRequest(state models.BookingState, session *models.Session, logger *zap.Logger) (*models.PickupScheduleRequest, error) {
	if !session.Authenticated() {
		return nil, NewPreconditionError("Missing session details")
	}
	if state.SelectedRegion == nil {
		return nil, NewPreconditionError("No region selected")
	}
	if state.SelectedServiceID == 0 {
		return nil, NewPreconditionError("No service selected")
	}
	if state.Pickup == nil || !pointPresent(*state.Pickup) || !state.Pickup.HasCoordinates() {
		return nil, NewPreconditionError("Pickup location is incomplete")
	}
	if state.Dropoff == nil || !pointPresent(*state.Dropoff) || !state.Dropoff.HasCoordinates() {
		return nil, NewPreconditionError("Drop location is incomplete")
	}

	phone := NormalizePhone(state.CustomerCountryCode, state.CustomerPhone, logger)
	coupon := ResolveCouponAccount(state.AppliedCoupon, state.Promotions)

	mode := state.PaymentMethod.Mode()
	cardID := ""
	switch state.PaymentMethod {
	case models.PaymentMethodStripeCard:
		cardID = state.SelectedCardID
	case models.PaymentMethodSquareCard:
		cardID = state.SelectedSquareCardID
	}

	var pickupTime time.Time
	if state.ScheduledAt != nil {
		pickupTime = *state.ScheduledAt
	}

	return &models.PickupScheduleRequest{
		RegionID:       state.SelectedRegion.RegionID,
		ServiceID:      state.SelectedServiceID,
		VehicleType:    state.SelectedRegion.VehicleType,
		Latitude:       state.Pickup.Lat,
		Longitude:      state.Pickup.Lng,
		PickupAddress:  state.Pickup.Address,
		DropLatitude:   state.Dropoff.Lat,
		DropLongitude:  state.Dropoff.Lng,
		DropAddress:    state.Dropoff.Address,
		Stops:          state.Stops,
		PickupTime:     pickupTime,
		PassengerCount: state.PassengerCount,
		LuggageCount:   state.LuggageCount,
		PaymentMode:    mode,
		CardID:         cardID,
		PromoID:        state.AppliedCoupon,
		CouponToApply:  coupon,
		CustomerName:   state.CustomerName,
		CustomerPhone:  phone,
		DriverNote:     state.DriverNote,
		FlightNumber:   state.FlightNumber,
	}, nil
}

// SubmitPickupSchedule shapes and submits the current draft. The submitting
// flag is cleared whether the call succeeds or fails; remote errors propagate
// to the caller unmodified, with no retry here.
func (o *Orchestrator) SubmitPickupSchedule(ctx context.Context, session *models.Session) (*models.PickupScheduleResponse, error) {
	state := o.Store.Snapshot()

	req, err := BuildPickupScheduleRequest(state, session, o.Logger)
	if err != nil {
		return nil, err
	}

	o.Store.setSubmitting(true)
	resp, err := o.Dispatch.InsertPickupSchedule(ctx, session, *req)
	// Cleared before Reset: persisting the flag after Reset would re-create
	// the just-deleted draft key with an empty state.
	o.Store.setSubmitting(false)
	if err != nil {
		return nil, err
	}

	o.recordSubmission(ctx, session, state, *req, resp)
	o.Store.Reset()
	return resp, nil
}

// recordSubmission persists the local booking record and queues the pickup
// reminder. Both are best-effort; the booking already exists upstream.
func (o *Orchestrator) recordSubmission(ctx context.Context, session *models.Session, state models.BookingState, req models.PickupScheduleRequest, resp *models.PickupScheduleResponse) {
	if o.Recents != nil {
		for kind, loc := range map[string]*models.Location{"pickup": state.Pickup, "drop": state.Dropoff} {
			if err := o.Recents.Save(ctx, models.RecentLocation{
				UserID:   session.UserID,
				Location: *loc,
				Kind:     kind,
			}); err != nil {
				o.Logger.Warn("failed to save recent location", zap.Error(err))
			}
		}
	}
	if o.Records == nil {
		return
	}
	record := models.BookingRecord{
		ID:          uuid.New().String(),
		UserID:      session.UserID,
		BookingID:   resp.BookingID,
		RegionName:  state.SelectedRegion.RegionName,
		Fare:        state.SelectedRegion.Fare,
		Currency:    state.SelectedRegion.CurrencySymbol,
		Pickup:      *state.Pickup,
		Dropoff:     *state.Dropoff,
		Stops:       state.Stops,
		PickupTime:  req.PickupTime,
		PaymentMode: req.PaymentMode,
		Status:      "Submitted",
	}
	if _, err := o.Records.Create(ctx, record); err != nil {
		o.Logger.Warn("failed to persist booking record", zap.Error(err))
		return
	}
	if o.Reminders != nil {
		if err := o.Reminders.SchedulePickupReminder(record); err != nil {
			o.Logger.Warn("failed to schedule pickup reminder", zap.Error(err))
		}
	}
}

// FindDrivers asks the dispatch backend for available vehicle regions around
// the current pickup, carrying the draft's party counts and promotion.
func (o *Orchestrator) FindDrivers(ctx context.Context, session *models.Session) ([]models.VehicleRegion, error) {
	state := o.Store.Snapshot()
	if res := ValidatePickup(state.Pickup); !res.IsValid {
		return nil, &ValidationError{Reason: res.Error}
	}

	var pickupTime time.Time
	if state.ScheduledAt != nil {
		pickupTime = *state.ScheduledAt
	}
	req := models.FindDriversRequest{
		Latitude:       state.Pickup.Lat,
		Longitude:      state.Pickup.Lng,
		PickupTime:     pickupTime,
		PassengerCount: state.PassengerCount,
		LuggageCount:   state.LuggageCount,
		PaymentMode:    state.PaymentMethod.Mode(),
		PromoID:        state.AppliedCoupon,
		CouponToApply:  ResolveCouponAccount(state.AppliedCoupon, state.Promotions),
	}
	return o.Finder.FindDrivers(ctx, session, req)
}
