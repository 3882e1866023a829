package models

// OperatorParams is the server-delivered per-tenant configuration, fetched
// once per operator token and cached for the browser session.
type OperatorParams struct {
	OperatorToken string `json:"operator_token"`
	OperatorName  string `json:"operator_name"`
	LogoURL       string `json:"logo_url,omitempty"`
	PrimaryColor  string `json:"primary_color,omitempty"`

	StripeEnabled bool `json:"stripe_enabled"`
	SquareEnabled bool `json:"square_enabled"`

	// Empty values fall back to the environment defaults in config.
	StripePublishableKey string `json:"stripe_publishable_key,omitempty"`
	SquareApplicationID  string `json:"square_application_id,omitempty"`
	SquareLocationID     string `json:"square_location_id,omitempty"`

	ScheduleRidesEnabled bool `json:"schedule_rides_enabled"`
	PromotionsEnabled    bool `json:"promotions_enabled"`
}
