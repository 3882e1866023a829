package user

import (
	"context"

	"ridebook/clients/dispatch"
	"ridebook/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionService manages the phone/OTP login flow and the resulting session
// identifier pair.
type SessionService interface {
	RequestOTP(ctx context.Context, phone, countryCode string) error
	VerifyOTP(ctx context.Context, phone, countryCode, otp string) (string, *models.Session, *models.UserProfile, error)
	Session(localKey string) (*models.Session, error)
	Profile(ctx context.Context, session *models.Session) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, session *models.Session, profile models.UserProfile) error
	Logout(ctx context.Context, localKey string) error
}

// DefaultSessionService implements SessionService against the dispatch API,
// with sessions held in Redis.
type DefaultSessionService struct {
	Dispatch *dispatch.Client
	Cache    *redis.Client
	Logger   *zap.Logger
}
