package models

import "time"

// Session is the two-token credential pair (plus its user-scoped twin)
// required on authenticated dispatch requests. It is distinct from the login
// JWT the backend may also issue.
type Session struct {
	SessionID             string `json:"sessionId"`
	SessionIdentifier     string `json:"sessionIdentifier"`
	UserSessionID         string `json:"userSessionId"`
	UserSessionIdentifier string `json:"userSessionIdentifier"`

	UserID     string    `json:"userId,omitempty"`
	AuthToken  string    `json:"authToken,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

// Authenticated reports whether the session carries the credential pair.
func (s *Session) Authenticated() bool {
	return s != nil && s.SessionID != "" && s.SessionIdentifier != ""
}

// UserProfile is the dispatch-held rider profile.
type UserProfile struct {
	UserID      string `json:"user_id"`
	Name        string `json:"user_name"`
	Email       string `json:"user_email"`
	Phone       string `json:"phone_no"`
	CountryCode string `json:"country_code"`
	Image       string `json:"user_image,omitempty"`
}
