package booking

import (
	"context"
	"fmt"
	"sync"

	"ridebook/clients/dispatch"
	"ridebook/config"
	"ridebook/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/setupintent"
	"go.uber.org/zap"
)

// CardFetcher pulls the card/wallet snapshot for a pickup point.
type CardFetcher interface {
	FetchPaymentDetails(ctx context.Context, session *models.Session, lat, lng float64) (*dispatch.PaymentDetailsReply, error)
}

// CardDeleter removes a saved card upstream and returns the reply flag.
type CardDeleter interface {
	DeleteCard(ctx context.Context, session *models.Session, provider models.CardProvider, cardID string) (int, string, error)
}

// OperatorSource supplies the cached per-tenant operator params.
type OperatorSource interface {
	Params(ctx context.Context) (*models.OperatorParams, error)
}

// PaymentService fetches and normalizes saved payment instruments for the
// current pickup and keeps the draft's card selection consistent with the
// live list.
//
// Overlapping fetches from rapid pickup changes are not guarded: the last
// response to resolve wins and overwrites the snapshot. That matches the
// source behavior; the reconciliation invariant below still runs on every
// commit, so a selection can never outlive the latest fetched list.
type PaymentService struct {
	Store    *Store
	Fetcher  CardFetcher
	Deleter  CardDeleter
	Operator OperatorSource
	Logger   *zap.Logger

	mu             sync.RWMutex
	details        models.PaymentDetails
	loadedOnce     bool
	initialLoading bool
	refreshing     bool

	haveLast      bool
	lastLat       float64
	lastLng       float64
	lastSessionID string
}

// Details returns the latest committed payment snapshot.
func (p *PaymentService) Details() models.PaymentDetails {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.details
}

// InitialLoading reports whether the first fetch is still in flight; the UI
// shows the full spinner only for this one.
func (p *PaymentService) InitialLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.initialLoading
}

// Refreshing reports whether a non-initial fetch is in flight.
func (p *PaymentService) Refreshing() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.refreshing
}

// SyncOnChange refetches when the pickup coordinates or session identity have
// changed since the last fetch. Without both a valid pickup and an
// authenticated session it is a no-op, not an error.
func (p *PaymentService) SyncOnChange(ctx context.Context, session *models.Session, pickup *models.Location) error {
	if pickup == nil || !pickup.HasCoordinates() || !session.Authenticated() {
		return nil
	}

	p.mu.Lock()
	if p.haveLast && p.lastLat == pickup.Lat && p.lastLng == pickup.Lng && p.lastSessionID == session.SessionID {
		p.mu.Unlock()
		return nil
	}
	p.haveLast = true
	p.lastLat = pickup.Lat
	p.lastLng = pickup.Lng
	p.lastSessionID = session.SessionID
	if p.loadedOnce {
		p.refreshing = true
	} else {
		p.initialLoading = true
	}
	p.mu.Unlock()

	return p.fetch(ctx, session, pickup.Lat, pickup.Lng)
}

func (p *PaymentService) fetch(ctx context.Context, session *models.Session, lat, lng float64) error {
	defer func() {
		p.mu.Lock()
		p.initialLoading = false
		p.refreshing = false
		p.mu.Unlock()
	}()

	reply, err := p.Fetcher.FetchPaymentDetails(ctx, session, lat, lng)
	if err != nil {
		return err
	}

	details := models.PaymentDetails{
		StripeCards:   reply.StripeCards,
		SquareCards:   reply.SquareCards,
		WalletBalance: reply.WalletBalance,
	}
	for i := range details.StripeCards {
		details.StripeCards[i].Normalize()
	}
	for i := range details.SquareCards {
		details.SquareCards[i].Normalize()
	}

	var params *models.OperatorParams
	if p.Operator != nil {
		if params, err = p.Operator.Params(ctx); err != nil {
			p.Logger.Warn("operator params unavailable, using fallbacks", zap.Error(err))
			params = nil
		}
	}
	applyProviderConfig(&details, reply, params)

	p.commit(details)
	return nil
}

// applyProviderConfig resolves enablement and keys with operator params
// taking precedence over the environment fallbacks.
func applyProviderConfig(d *models.PaymentDetails, reply *dispatch.PaymentDetailsReply, params *models.OperatorParams) {
	d.StripeEnabled = reply.StripeEnabled == 1
	d.SquareEnabled = reply.SquareEnabled == 1
	d.StripePublishableKey = config.AppConfig.StripePublishableKey
	d.SquareApplicationID = config.AppConfig.SquareApplicationID
	d.SquareLocationID = config.AppConfig.SquareLocationID

	if params == nil {
		return
	}
	d.StripeEnabled = params.StripeEnabled
	d.SquareEnabled = params.SquareEnabled
	if params.StripePublishableKey != "" {
		d.StripePublishableKey = params.StripePublishableKey
	}
	if params.SquareApplicationID != "" {
		d.SquareApplicationID = params.SquareApplicationID
	}
	if params.SquareLocationID != "" {
		d.SquareLocationID = params.SquareLocationID
	}
}

// commit installs a fetched snapshot (last write wins) and reconciles the
// draft's selection against it: a selected card missing from the new list is
// cleared to empty so the UI never holds a selection that no longer exists.
func (p *PaymentService) commit(details models.PaymentDetails) {
	p.mu.Lock()
	p.details = details
	p.loadedOnce = true
	p.mu.Unlock()

	state := p.Store.Snapshot()
	if state.SelectedCardID != "" && !containsCard(details.StripeCards, state.SelectedCardID) {
		p.Store.ClearCardSelection(models.CardProviderStripe)
	}
	if state.SelectedSquareCardID != "" && !containsCard(details.SquareCards, state.SelectedSquareCardID) {
		p.Store.ClearCardSelection(models.CardProviderSquare)
	}
}

func containsCard(cards []models.PaymentCard, cardID string) bool {
	for _, c := range cards {
		if c.CardID == cardID {
			return true
		}
	}
	return false
}

// DeleteCard removes a saved card. Success is judged by the provider-specific
// flag table; anything else surfaces the server message or a generic one.
func (p *PaymentService) DeleteCard(ctx context.Context, session *models.Session, provider models.CardProvider, cardID string) error {
	flag, message, err := p.Deleter.DeleteCard(ctx, session, provider, cardID)
	if err != nil {
		return err
	}
	if !models.DeleteSucceeded(provider, flag) {
		if message == "" {
			message = "could not delete card"
		}
		return fmt.Errorf("%s", message)
	}

	p.mu.Lock()
	if provider == models.CardProviderStripe {
		p.details.StripeCards = removeCard(p.details.StripeCards, cardID)
	} else {
		p.details.SquareCards = removeCard(p.details.SquareCards, cardID)
	}
	details := p.details
	p.mu.Unlock()

	p.commit(details)
	return nil
}

// removeCard returns a fresh slice; filtering in place would write through
// the backing array shared with snapshots handed out by Details.
func removeCard(cards []models.PaymentCard, cardID string) []models.PaymentCard {
	out := make([]models.PaymentCard, 0, len(cards))
	for _, c := range cards {
		if c.CardID != cardID {
			out = append(out, c)
		}
	}
	return out
}

// CreateSetupIntent opens a Stripe SetupIntent for saving a new card. The
// client confirms it with the publishable key from the payment snapshot.
func (p *PaymentService) CreateSetupIntent(ctx context.Context, session *models.Session) (string, error) {
	if !session.Authenticated() {
		return "", NewPreconditionError("Missing session details")
	}
	params := &stripe.SetupIntentParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	intent, err := setupintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create setup intent: %w", err)
	}
	return intent.ClientSecret, nil
}
