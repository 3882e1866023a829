package models

import "strings"

// Location is a resolved map point attached to a booking step. It is produced
// by the maps/autocomplete collaborator and treated as immutable once set;
// setters on the booking draft replace the whole value.
type Location struct {
	Address string  `bson:"address" json:"address"`
	Lat     float64 `bson:"lat" json:"lat"`
	Lng     float64 `bson:"lng" json:"lng"`
	PlaceID string  `bson:"place_id,omitempty" json:"placeId,omitempty"`
}

// HasCoordinates reports whether both coordinates fall inside valid ranges.
func (l Location) HasCoordinates() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// TrimmedAddress returns the address with surrounding whitespace removed.
func (l Location) TrimmedAddress() string {
	return strings.TrimSpace(l.Address)
}

// SameAs reports whether two locations refer to the same place. Non-empty
// trimmed addresses are compared first; exact coordinate equality is the
// fallback only when neither side carries an address. A point with an address
// is never equal to one without.
func (l Location) SameAs(other Location) bool {
	a, b := l.TrimmedAddress(), other.TrimmedAddress()
	if a != "" && b != "" {
		return a == b
	}
	if a == "" && b == "" {
		return l.Lat == other.Lat && l.Lng == other.Lng
	}
	return false
}

// RecentLocation is a previously used pickup or drop point stored per user.
type RecentLocation struct {
	ID       string   `bson:"id" json:"id"`
	UserID   string   `bson:"user_id" json:"user_id"`
	Location Location `bson:"location" json:"location"`
	Kind     string   `bson:"kind" json:"kind"` // "pickup" or "drop"
	UsedAt   int64    `bson:"used_at" json:"used_at"`
}
