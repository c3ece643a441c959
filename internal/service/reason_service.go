package service

import (
	"errors"
	"fmt"

	"github.com/calltrack/dnc-registry/internal/apperr"
	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/repository"
	"github.com/calltrack/dnc-registry/internal/validation"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReasonService struct {
	reasonRepo *repository.ReasonRepository
}

func NewReasonService(reasonRepo *repository.ReasonRepository) *ReasonService {
	return &ReasonService{reasonRepo: reasonRepo}
}

// Create stores a new reason. The name is upper-cased before the uniqueness
// check so "movistar" and "MOVISTAR" collide.
func (s *ReasonService) Create(name string) (*models.ReasonWithCount, error) {
	normalized, fieldErr := validation.ReasonName(name)
	if fieldErr != nil {
		return nil, apperr.Validation("invalid data", *fieldErr)
	}

	existing, err := s.reasonRepo.GetReasonByName(normalized)
	if err != nil {
		logger.Log.Error("Failed to check reason existence", zap.Error(err))
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		logger.Log.Warn("Reason create rejected: name already exists",
			zap.String("name", normalized),
		)
		return nil, apperr.Duplicate("this reason already exists")
	}

	reason := &models.Reason{
		ID:   uuid.New(),
		Name: normalized,
	}

	if err := s.reasonRepo.CreateReason(reason); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("this reason already exists")
		}
		logger.Log.Error("Failed to create reason", zap.String("name", normalized), zap.Error(err))
		return nil, apperr.Internal(err)
	}

	logger.Log.Info("Reason created",
		zap.String("reason_id", reason.ID.String()),
		zap.String("name", normalized),
	)

	return &models.ReasonWithCount{Reason: *reason, DNCCount: 0}, nil
}

// List returns all reasons with their referencing entry counts,
// alphabetically.
func (s *ReasonService) List() ([]models.ReasonWithCount, error) {
	reasons, err := s.reasonRepo.GetAllWithCounts()
	if err != nil {
		logger.Log.Error("Failed to list reasons", zap.Error(err))
		return nil, apperr.Internal(err)
	}
	return reasons, nil
}

// Delete removes a reason, refusing while any DNC entry still references it.
func (s *ReasonService) Delete(id string) error {
	reasonID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid reason id")
	}

	reason, err := s.reasonRepo.GetReasonByID(reasonID)
	if err != nil {
		logger.Log.Error("Failed to fetch reason", zap.String("reason_id", id), zap.Error(err))
		return apperr.Internal(err)
	}
	if reason == nil {
		return apperr.NotFound("reason not found")
	}

	count, err := s.reasonRepo.CountDNCEntries(reasonID)
	if err != nil {
		logger.Log.Error("Failed to count reason dependents", zap.String("reason_id", id), zap.Error(err))
		return apperr.Internal(err)
	}
	if count > 0 {
		logger.Log.Warn("Reason delete rejected: still referenced",
			zap.String("reason_id", id),
			zap.Int64("dependents", count),
		)
		return apperr.Referential(fmt.Sprintf("cannot delete: %d numbers reference this reason", count))
	}

	if err := s.reasonRepo.DeleteReason(reasonID); err != nil {
		logger.Log.Error("Failed to delete reason", zap.String("reason_id", id), zap.Error(err))
		return apperr.Internal(err)
	}

	logger.Log.Info("Reason deleted",
		zap.String("reason_id", id),
		zap.String("name", reason.Name),
	)

	return nil
}
