package service

import (
	"errors"

	"github.com/calltrack/dnc-registry/internal/apperr"
	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/repository"
	"github.com/calltrack/dnc-registry/internal/utils"
	"github.com/calltrack/dnc-registry/internal/validation"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create registers a new account. Role defaults to USER when empty and is
// restricted to the two known values.
func (s *UserService) Create(username, password string, role models.Role) (*models.User, error) {
	var fields []apperr.FieldError
	if fieldErr := validation.Username(username); fieldErr != nil {
		fields = append(fields, *fieldErr)
	}
	if fieldErr := validation.Password(password); fieldErr != nil {
		fields = append(fields, *fieldErr)
	}
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		fields = append(fields, apperr.FieldError{Field: "role", Message: "role must be USER or ADMIN"})
	}
	if len(fields) > 0 {
		logger.Log.Warn("User create validation failed",
			zap.String("username", username),
			zap.Int("field_errors", len(fields)),
		)
		return nil, apperr.Validation("invalid data", fields...)
	}

	existing, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to check username existence", zap.Error(err))
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		logger.Log.Warn("User create rejected: username already exists",
			zap.String("username", username),
		)
		return nil, apperr.Duplicate("this username already exists")
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("this username already exists")
		}
		logger.Log.Error("Failed to create user",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, apperr.Internal(err)
	}

	logger.Log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", username),
		zap.String("role", string(role)),
	)

	return user, nil
}

// List returns every account, newest first. Password hashes are excluded by
// the model's JSON tags.
func (s *UserService) List() ([]*models.User, error) {
	users, err := s.userRepo.GetAllUsers()
	if err != nil {
		logger.Log.Error("Failed to list users", zap.Error(err))
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// Delete removes an account permanently. Callers may never delete their own
// account, so the last admin cannot lock everyone out mid-session.
func (s *UserService) Delete(id string, callerID uuid.UUID) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid user id")
	}

	if userID == callerID {
		logger.Log.Warn("User delete rejected: self-deletion",
			zap.String("user_id", id),
		)
		return apperr.Forbidden("you cannot delete your own account")
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		logger.Log.Error("Failed to fetch user", zap.String("user_id", id), zap.Error(err))
		return apperr.Internal(err)
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}

	if err := s.userRepo.DeleteUser(userID); err != nil {
		logger.Log.Error("Failed to delete user", zap.String("user_id", id), zap.Error(err))
		return apperr.Internal(err)
	}

	logger.Log.Info("User deleted",
		zap.String("user_id", id),
		zap.String("username", user.Username),
		zap.String("deleted_by", callerID.String()),
	)

	return nil
}
