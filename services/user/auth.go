package user

import (
	"context"
	"time"

	"ridebook/models"
	"ridebook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestOTP asks the dispatch backend to text a one-time code.
func (s *DefaultSessionService) RequestOTP(ctx context.Context, phone, countryCode string) error {
	return s.Dispatch.RequestOTP(ctx, phone, countryCode)
}

// VerifyOTP exchanges the code for the session identifier pair, stores the
// session under a fresh local key, and returns key, session, and profile.
func (s *DefaultSessionService) VerifyOTP(ctx context.Context, phone, countryCode, otp string) (string, *models.Session, *models.UserProfile, error) {
	reply, err := s.Dispatch.VerifyOTP(ctx, phone, countryCode, otp)
	if err != nil {
		return "", nil, nil, err
	}

	session := models.Session{
		SessionID:             reply.SessionID,
		SessionIdentifier:     reply.SessionIdentifier,
		UserSessionID:         reply.UserSessionID,
		UserSessionIdentifier: reply.UserSessionIdentifier,
		UserID:                reply.Profile.UserID,
		AuthToken:             reply.AuthToken,
		CreatedAt:             time.Now(),
	}
	if session.AuthToken != "" && utils.TokenExpired(session.AuthToken) {
		s.Logger.Warn("dispatch issued an already expired login token",
			zap.String("userId", session.UserID))
	}

	localKey := uuid.New().String()
	if err := SaveSession(s.Cache, localKey, session); err != nil {
		return "", nil, nil, err
	}
	profile := reply.Profile
	return localKey, &session, &profile, nil
}

// Session resolves a local key into the stored session.
func (s *DefaultSessionService) Session(localKey string) (*models.Session, error) {
	session, err := GetSession(s.Cache, localKey)
	if err != nil {
		return nil, &SessionExpiredError{Message: "session not found or expired"}
	}
	return session, nil
}

// Profile fetches the rider profile; a 101 flag tears the classification
// upward as a session error.
func (s *DefaultSessionService) Profile(ctx context.Context, session *models.Session) (*models.UserProfile, error) {
	profile, flag, err := s.Dispatch.FetchProfile(ctx, session)
	if err != nil {
		return nil, err
	}
	if flag == models.FlagSessionExpired {
		return nil, &SessionExpiredError{}
	}
	return profile, nil
}

// UpdateProfile pushes edits upstream. Flag 144 on this call means the email
// is already registered; flag 101 is a session error.
func (s *DefaultSessionService) UpdateProfile(ctx context.Context, session *models.Session, profile models.UserProfile) error {
	flag, _, err := s.Dispatch.UpdateProfile(ctx, session, profile)
	if err != nil {
		return err
	}
	switch flag {
	case models.FlagSessionExpired:
		return &SessionExpiredError{}
	case models.FlagProfileEmailConflict:
		return &EmailConflictError{}
	}
	return nil
}

// Logout invalidates the session upstream (best effort) and always removes
// the local copy.
func (s *DefaultSessionService) Logout(ctx context.Context, localKey string) error {
	session, err := GetSession(s.Cache, localKey)
	if err == nil {
		if err := s.Dispatch.Logout(ctx, session); err != nil {
			s.Logger.Warn("upstream logout failed", zap.Error(err))
		}
	}
	return DeleteSession(s.Cache, localKey)
}
