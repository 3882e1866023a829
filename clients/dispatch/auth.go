package dispatch

import (
	"context"
	"net/http"
	"net/url"

	"ridebook/models"
)

// LoginReply is the verify-OTP response carrying the session identifier pair
// and, optionally, a login JWT.
type LoginReply struct {
	Envelope
	SessionID             string             `json:"session_id"`
	SessionIdentifier     string             `json:"session_identifier"`
	UserSessionID         string             `json:"user_session_id"`
	UserSessionIdentifier string             `json:"user_session_identifier"`
	AuthToken             string             `json:"auth_token,omitempty"`
	Profile               models.UserProfile `json:"user_data"`
}

// RequestOTP asks the backend to send a one-time code to the phone.
func (c *Client) RequestOTP(ctx context.Context, phone, countryCode string) error {
	form := url.Values{}
	form.Set("phone_no", phone)
	form.Set("country_code", countryCode)

	var reply Envelope
	status, err := c.postForm(ctx, "/api/v1/generate_otp", nil, form, &reply)
	if err != nil {
		return err
	}
	if status >= http.StatusBadRequest || (reply.Flag != models.FlagGenericSuccess && reply.Flag != 0) {
		return &APIError{Flag: reply.Flag, HTTPStatus: status, Message: reply.Text()}
	}
	return nil
}

// VerifyOTP exchanges a one-time code for the session identifier pair.
func (c *Client) VerifyOTP(ctx context.Context, phone, countryCode, otp string) (*LoginReply, error) {
	form := url.Values{}
	form.Set("phone_no", phone)
	form.Set("country_code", countryCode)
	form.Set("otp", otp)

	var reply LoginReply
	status, err := c.postForm(ctx, "/api/v1/verify_otp", nil, form, &reply)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest || reply.SessionID == "" {
		return nil, &APIError{Flag: reply.Flag, HTTPStatus: status, Message: reply.Text()}
	}
	return &reply, nil
}

// FetchProfile returns the rider profile for the session.
func (c *Client) FetchProfile(ctx context.Context, session *models.Session) (*models.UserProfile, int, error) {
	var reply struct {
		Envelope
		Profile models.UserProfile `json:"user_data"`
	}
	status, err := c.postForm(ctx, "/api/v1/fetch_profile", session, url.Values{}, &reply)
	if err != nil {
		return nil, 0, err
	}
	if status >= http.StatusBadRequest {
		return nil, reply.Flag, &APIError{Flag: reply.Flag, HTTPStatus: status, Message: reply.Text()}
	}
	return &reply.Profile, reply.Flag, nil
}

// UpdateProfile pushes profile edits upstream and returns the reply flag;
// flag 144 here means the email is already registered.
func (c *Client) UpdateProfile(ctx context.Context, session *models.Session, profile models.UserProfile) (int, string, error) {
	form := url.Values{}
	form.Set("user_name", profile.Name)
	form.Set("user_email", profile.Email)

	var reply Envelope
	status, err := c.postForm(ctx, "/api/v1/update_profile", session, form, &reply)
	if err != nil {
		return 0, "", err
	}
	if status >= http.StatusBadRequest {
		return reply.Flag, reply.Text(), &APIError{Flag: reply.Flag, HTTPStatus: status, Message: reply.Text()}
	}
	return reply.Flag, reply.Text(), nil
}

// Logout invalidates the session pair upstream. Failures are reported but the
// local session is torn down regardless.
func (c *Client) Logout(ctx context.Context, session *models.Session) error {
	var reply Envelope
	status, err := c.postForm(ctx, "/api/v1/logout", session, url.Values{}, &reply)
	if err != nil {
		return err
	}
	if status >= http.StatusBadRequest {
		return &APIError{Flag: reply.Flag, HTTPStatus: status, Message: reply.Text()}
	}
	return nil
}
