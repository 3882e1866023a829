package models

import "time"

// VehicleRegion is a backend-priced combination of geographic service area and
// vehicle type, carrying the quoted fare and ETA for the current pickup.
type VehicleRegion struct {
	RegionID       int     `json:"region_id"`
	VehicleType    int     `json:"vehicle_type"`
	RegionName     string  `json:"region_name"`
	Fare           float64 `json:"fare"`
	CurrencySymbol string  `json:"currency_symbol"`
	// ETA in minutes; nil means the backend reported no estimate.
	ETAMinutes   *int   `json:"eta"`
	VehicleImage string `json:"vehicle_image,omitempty"`
}

// BookingState is the aggregate draft of an in-progress booking. It is owned
// exclusively by the booking store; every field is replaced whole on write.
type BookingState struct {
	SelectedRegion    *VehicleRegion `json:"selectedRegion"`
	SelectedServiceID int            `json:"selectedServiceId"`

	Pickup  *Location  `json:"pickup"`
	Dropoff *Location  `json:"dropoff"`
	Stops   []Location `json:"stops"`

	PassengerCount int `json:"passengerCount"`
	LuggageCount   int `json:"luggageCount"`

	// ScheduledAt is mandatory before submission; nil blocks the schedule step.
	ScheduledAt *time.Time `json:"scheduledAt"`

	PaymentMethod        PaymentMethod `json:"paymentMethod"`
	SelectedCardID       string        `json:"selectedCardId"`
	SelectedSquareCardID string        `json:"selectedSquareCardId"`

	AppliedCoupon *int        `json:"appliedCoupon"`
	Promotions    []Promotion `json:"promotions"`

	DriverNote          string `json:"driverNote"`
	FlightNumber        string `json:"flightNumber"`
	CustomerName        string `json:"customerName"`
	CustomerPhone       string `json:"customerPhone"`
	CustomerCountryCode string `json:"customerCountryCode"`

	Submitting bool `json:"submitting"`
}

// PickupScheduleRequest is the fully shaped outbound payload for the
// insert-pickup-schedule dispatch call. Field shaping happens in the
// orchestrator; the dispatch client only encodes it.
type PickupScheduleRequest struct {
	RegionID    int
	ServiceID   int
	VehicleType int

	Latitude      float64
	Longitude     float64
	PickupAddress string
	DropLatitude  float64
	DropLongitude float64
	DropAddress   string
	Stops         []Location

	PickupTime     time.Time
	PassengerCount int
	LuggageCount   int

	PaymentMode int
	CardID      string

	PromoID       *int
	CouponToApply *int

	CustomerName  string
	CustomerPhone string
	DriverNote    string
	FlightNumber  string
}

// PickupScheduleResponse is the dispatch backend's reply to a submission.
type PickupScheduleResponse struct {
	Flag      int    `json:"flag"`
	BookingID string `json:"pickup_id"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// FindDriversRequest asks the dispatch backend for available vehicle regions
// around a pickup point.
type FindDriversRequest struct {
	Latitude       float64
	Longitude      float64
	PickupTime     time.Time
	PassengerCount int
	LuggageCount   int
	PaymentMode    int
	PromoID        *int
	CouponToApply  *int
}

// BookingRecord is the locally persisted record of a submitted booking.
type BookingRecord struct {
	ID          string     `bson:"id" json:"id"`
	UserID      string     `bson:"user_id" json:"user_id"`
	BookingID   string     `bson:"booking_id" json:"booking_id"`
	RegionName  string     `bson:"region_name" json:"region_name"`
	Fare        float64    `bson:"fare" json:"fare"`
	Currency    string     `bson:"currency" json:"currency"`
	Pickup      Location   `bson:"pickup" json:"pickup"`
	Dropoff     Location   `bson:"dropoff" json:"dropoff"`
	Stops       []Location `bson:"stops,omitempty" json:"stops,omitempty"`
	PickupTime  time.Time  `bson:"pickup_time" json:"pickup_time"`
	PaymentMode int        `bson:"payment_mode" json:"payment_mode"`
	Status      string     `bson:"status" json:"status"` // e.g., "Submitted", "Reminded"
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}
