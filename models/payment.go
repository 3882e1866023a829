package models

// PaymentMethod is the rider's chosen way to pay for a booking.
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodStripeCard PaymentMethod = "stripe_card"
	PaymentMethodSquareCard PaymentMethod = "square_card"
)

// Dispatch payment-mode codes. The mapping is fixed by the backend.
const (
	PaymentModeCash   = 1
	PaymentModeStripe = 9
	PaymentModeSquare = 73
)

// Mode maps a payment method onto the dispatch payment-mode code. Anything
// other than the card methods, including an unset method, falls back to cash.
func (m PaymentMethod) Mode() int {
	switch m {
	case PaymentMethodStripeCard:
		return PaymentModeStripe
	case PaymentMethodSquareCard:
		return PaymentModeSquare
	default:
		return PaymentModeCash
	}
}

// PaymentCard is a saved card instrument from either provider. Some dispatch
// responses key the card on "id", others on "card_id"; Normalize makes both
// fields carry the same value so callers can rely on CardID unconditionally.
type PaymentCard struct {
	ID          string `json:"id"`
	CardID      string `json:"card_id"`
	Brand       string `json:"brand,omitempty"`
	Last4       string `json:"last_4,omitempty"`
	ExpiryMonth int    `json:"expiry_month,omitempty"`
	ExpiryYear  int    `json:"expiry_year,omitempty"`
}

// Normalize coerces the id/card_id dual key into both fields.
func (c *PaymentCard) Normalize() {
	if c.CardID == "" {
		c.CardID = c.ID
	}
	if c.ID == "" {
		c.ID = c.CardID
	}
}

// PaymentDetails is the ephemeral, per-pickup snapshot of saved instruments,
// wallet balance, and provider configuration.
type PaymentDetails struct {
	StripeCards   []PaymentCard `json:"stripeCards"`
	SquareCards   []PaymentCard `json:"squareCards"`
	WalletBalance float64       `json:"walletBalance"`

	StripeEnabled bool `json:"stripeEnabled"`
	SquareEnabled bool `json:"squareEnabled"`

	StripePublishableKey string `json:"stripePublishableKey"`
	SquareApplicationID  string `json:"squareApplicationId"`
	SquareLocationID     string `json:"squareLocationId"`
}

// CardProvider identifies which payment provider holds a saved card.
type CardProvider string

const (
	CardProviderStripe CardProvider = "stripe"
	CardProviderSquare CardProvider = "square"
)

// Deletion success flags differ per provider; the asymmetry is mandated by
// the external APIs and must not be unified.
var (
	StripeDeleteSuccessFlags = map[int]bool{144: true, 200: true}
	SquareDeleteSuccessFlags = map[int]bool{143: true, 200: true}
)

// DeleteSucceeded reports whether a card-deletion response flag counts as
// success for the given provider.
func DeleteSucceeded(provider CardProvider, flag int) bool {
	switch provider {
	case CardProviderSquare:
		return SquareDeleteSuccessFlags[flag]
	case CardProviderStripe:
		return StripeDeleteSuccessFlags[flag]
	}
	return false
}
