// File: utils/constants.go
package utils

import "time"

// Namespaced Redis key prefixes. Clearing a draft key is only ever done by the
// navigation guard or an explicit logout.
const (
	BookingDraftPrefix   = "bookingDraft:"
	AuthSessionPrefix    = "authSession:"
	OperatorParamsPrefix = "operatorParams:"
)

// BookingDraftTTL is the time-to-live for an in-progress booking draft.
const BookingDraftTTL = 2 * time.Hour

// AuthSessionTTL is the time-to-live for an authenticated browser session.
const AuthSessionTTL = 24 * time.Hour

// OperatorParamsTTL is how long per-tenant operator configuration stays cached.
const OperatorParamsTTL = 30 * time.Minute
