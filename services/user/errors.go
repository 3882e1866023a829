package user

import (
	"errors"
	"net/http"
	"strings"

	"ridebook/clients/dispatch"
	"ridebook/models"
)

// SessionExpiredError forces a logout and a redirect to the public landing
// route; it is never surfaced as a toast.
type SessionExpiredError struct {
	Message string
}

func (e *SessionExpiredError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "session expired"
}

// EmailConflictError is the profile-update reply when the email is already
// registered to another account (flag 144 on that call).
type EmailConflictError struct{}

func (e *EmailConflictError) Error() string {
	return "email already registered"
}

var sessionKeywords = []string{"session", "auth", "unauthorized", "expired"}

// IsSessionError classifies a failure as a session error: flag 101, HTTP 401,
// or an error message matching the session/auth keyword set. The universal
// remedy for all of these is force-logout.
func IsSessionError(err error) bool {
	if err == nil {
		return false
	}
	var expired *SessionExpiredError
	if errors.As(err, &expired) {
		return true
	}
	var apiErr *dispatch.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Flag == models.FlagSessionExpired || apiErr.HTTPStatus == http.StatusUnauthorized {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	for _, kw := range sessionKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
