package service

import (
	"context"
	"time"

	"github.com/calltrack/dnc-registry/internal/apperr"
	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/repository"
	"github.com/calltrack/dnc-registry/internal/session"
	"github.com/calltrack/dnc-registry/internal/utils"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo      *repository.UserRepository
	revocations   session.RevocationStore
	jwtSecret     string
	jwtExpiration time.Duration
	environment   string
}

func NewAuthService(
	userRepo *repository.UserRepository,
	revocations session.RevocationStore,
	jwtSecret string,
	jwtExpiration time.Duration,
	environment string,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		revocations:   revocations,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		environment:   environment,
	}
}

// IsProduction returns true if running in production environment
func (s *AuthService) IsProduction() bool {
	return s.environment == "production"
}

// Login verifies credentials and issues a session token. Unknown username
// and wrong password produce the identical error so callers cannot
// enumerate accounts.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	start := time.Now()

	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to look up user",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", apperr.Internal(err)
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("username", username),
		)
		return nil, "", apperr.Unauthenticated("invalid credentials")
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", apperr.Internal(err)
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("username", username),
			zap.String("user_id", user.ID.String()),
		)
		return nil, "", apperr.Unauthenticated("invalid credentials")
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate session token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", apperr.Internal(err)
	}

	logger.Log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
		zap.Duration("duration", time.Since(start)),
	)

	return user, token, nil
}

// Logout revokes the session token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.Log.Error("Failed to revoke session token",
			zap.String("user_id", claims.UserID.String()),
			zap.Error(err),
		)
		return apperr.Internal(err)
	}

	logger.Log.Info("User logged out",
		zap.String("user_id", claims.UserID.String()),
		zap.String("username", claims.Username),
	)

	return nil
}
