package booking

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"ridebook/models"
	"ridebook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Store is the single source of truth for an in-progress booking draft. Every
// setter replaces the whole field value; there are no partial merges, so
// writers racing on different fields never corrupt each other. The draft is
// mirrored to Redis under a namespaced per-session key.
type Store struct {
	mu        sync.RWMutex
	sessionID string
	state     models.BookingState
	cache     *redis.Client
	logger    *zap.Logger
}

// NewStore creates a draft store for a session, restoring any persisted draft.
func NewStore(sessionID string, cache *redis.Client, logger *zap.Logger) *Store {
	s := &Store{
		sessionID: sessionID,
		cache:     cache,
		logger:    logger,
	}
	s.restore()
	return s
}

func (s *Store) draftKey() string {
	return utils.BookingDraftPrefix + s.sessionID
}

func (s *Store) restore() {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	data, err := s.cache.Get(ctx, s.draftKey()).Result()
	if err != nil {
		return
	}
	var state models.BookingState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		s.logger.Warn("discarding unreadable booking draft", zap.Error(err))
		return
	}
	s.state = state
}

// persist mirrors the current draft to Redis. Callers hold at least a read
// lock. Persistence failures are logged, never surfaced; the in-memory draft
// stays authoritative.
func (s *Store) persist() {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(s.state)
	if err != nil {
		s.logger.Error("failed to marshal booking draft", zap.Error(err))
		return
	}
	ctx := context.Background()
	if err := s.cache.Set(ctx, s.draftKey(), data, utils.BookingDraftTTL).Err(); err != nil {
		s.logger.Warn("failed to persist booking draft", zap.Error(err))
	}
}

// Snapshot returns a copy of the current draft.
func (s *Store) Snapshot() models.BookingState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.state
	if s.state.Stops != nil {
		state.Stops = append([]models.Location(nil), s.state.Stops...)
	}
	if s.state.Promotions != nil {
		state.Promotions = append([]models.Promotion(nil), s.state.Promotions...)
	}
	return state
}

// SelectRegion records the chosen vehicle region and service id.
func (s *Store) SelectRegion(region *models.VehicleRegion, serviceID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedRegion = region
	s.state.SelectedServiceID = serviceID
	s.persist()
}

// SetPickup replaces the pickup location.
func (s *Store) SetPickup(pickup *models.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Pickup = pickup
	s.persist()
}

// SetDropoff replaces the drop location.
func (s *Store) SetDropoff(dropoff *models.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Dropoff = dropoff
	s.persist()
}

// SetStops replaces the ordered intermediate stops.
func (s *Store) SetStops(stops []models.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Stops = stops
	s.persist()
}

// SetParty records passenger and luggage counts. Negative values are clamped
// to zero.
func (s *Store) SetParty(passengers, luggage int) {
	if passengers < 0 {
		passengers = 0
	}
	if luggage < 0 {
		luggage = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PassengerCount = passengers
	s.state.LuggageCount = luggage
	s.persist()
}

// SetSchedule replaces the scheduled pickup time.
func (s *Store) SetSchedule(at *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ScheduledAt = at
	s.persist()
}

// SelectPaymentMethod records the payment method and card. At most one of the
// provider card ids is ever populated, and only the one matching the method.
func (s *Store) SelectPaymentMethod(method models.PaymentMethod, cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PaymentMethod = method
	s.state.SelectedCardID = ""
	s.state.SelectedSquareCardID = ""
	switch method {
	case models.PaymentMethodStripeCard:
		s.state.SelectedCardID = cardID
	case models.PaymentMethodSquareCard:
		s.state.SelectedSquareCardID = cardID
	}
	s.persist()
}

// ClearCardSelection drops the selected card for one provider. Used by the
// payment reconciler when a selection vanishes from a fresh card list.
func (s *Store) ClearCardSelection(provider models.CardProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch provider {
	case models.CardProviderStripe:
		s.state.SelectedCardID = ""
	case models.CardProviderSquare:
		s.state.SelectedSquareCardID = ""
	}
	s.persist()
}

// ApplyCoupon records the applied promotion id (nil removes it).
func (s *Store) ApplyCoupon(promoID *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AppliedCoupon = promoID
	s.persist()
}

// SetPromotions replaces the known promotion list.
func (s *Store) SetPromotions(promos []models.Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Promotions = promos
	s.persist()
}

// SetCustomer records rider contact details.
func (s *Store) SetCustomer(name, phone, countryCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CustomerName = name
	s.state.CustomerPhone = phone
	s.state.CustomerCountryCode = countryCode
	s.persist()
}

// SetDriverNote replaces the note passed to the driver.
func (s *Store) SetDriverNote(note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DriverNote = note
	s.persist()
}

// SetFlightNumber replaces the flight number for airport pickups.
func (s *Store) SetFlightNumber(flight string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FlightNumber = flight
	s.persist()
}

func (s *Store) setSubmitting(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Submitting == v {
		return
	}
	s.state.Submitting = v
	s.persist()
}

// Submitting reports whether a submission is in flight.
func (s *Store) Submitting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Submitting
}

// Reset clears the draft and removes its persisted copy. Only the navigation
// guard, logout, and a successful submission call this.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.BookingState{}
	if s.cache != nil {
		if err := s.cache.Del(context.Background(), s.draftKey()).Err(); err != nil {
			s.logger.Warn("failed to clear persisted booking draft", zap.Error(err))
		}
	}
}
