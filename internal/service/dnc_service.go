package service

import (
	"errors"
	"time"

	"github.com/calltrack/dnc-registry/internal/apperr"
	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/repository"
	"github.com/calltrack/dnc-registry/internal/validation"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// maxListResults caps every list/search response.
	maxListResults = 100
	// minSearchLength is the shortest term that reaches the store; shorter
	// non-empty terms return an empty set without a query.
	minSearchLength = 3
)

type DNCService struct {
	dncRepo    *repository.DNCRepository
	reasonRepo *repository.ReasonRepository
	phoneRule  validation.PhoneRule
}

func NewDNCService(
	dncRepo *repository.DNCRepository,
	reasonRepo *repository.ReasonRepository,
	phoneRule validation.PhoneRule,
) *DNCService {
	return &DNCService{
		dncRepo:    dncRepo,
		reasonRepo: reasonRepo,
		phoneRule:  phoneRule,
	}
}

// Create validates and registers a blocked number, returning the entry
// joined with its reason.
func (s *DNCService) Create(phone, reasonID string, notes *string) (*models.DNCEntry, error) {
	start := time.Now()

	if fieldErr := validation.Phone(phone, s.phoneRule); fieldErr != nil {
		logger.Log.Warn("DNC create validation failed",
			zap.String("phone", phone),
			zap.String("reason", fieldErr.Message),
		)
		return nil, apperr.Validation("invalid data", *fieldErr)
	}

	reason, err := s.resolveReason(reasonID)
	if err != nil {
		return nil, err
	}

	existing, err := s.dncRepo.GetEntryByPhone(phone)
	if err != nil {
		logger.Log.Error("Failed to check phone existence", zap.Error(err))
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		logger.Log.Warn("DNC create rejected: phone already registered",
			zap.String("phone", phone),
		)
		return nil, apperr.Duplicate("this number is already on the DNC list")
	}

	entry := &models.DNCEntry{
		ID:       uuid.New(),
		Phone:    phone,
		ReasonID: reason.ID,
		Notes:    notes,
	}

	if err := s.dncRepo.CreateEntry(entry); err != nil {
		// Concurrent creates racing on the same phone are decided by the
		// unique constraint, not the pre-check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("this number is already on the DNC list")
		}
		logger.Log.Error("Failed to create DNC entry",
			zap.String("phone", phone),
			zap.Error(err),
		)
		return nil, apperr.Internal(err)
	}

	logger.Log.Info("DNC entry created",
		zap.String("entry_id", entry.ID.String()),
		zap.String("phone", phone),
		zap.String("reason", reason.Name),
		zap.Duration("duration", time.Since(start)),
	)

	entry.Reason = *reason
	return entry, nil
}

// List returns entries newest first, capped at 100. A non-empty search term
// shorter than three characters yields an empty result without touching the
// store; otherwise the term matches as a substring of phone or notes.
func (s *DNCService) List(search string) ([]models.DNCEntry, error) {
	if search != "" && len(search) < minSearchLength {
		return []models.DNCEntry{}, nil
	}

	entries, err := s.dncRepo.ListEntries(search, maxListResults)
	if err != nil {
		logger.Log.Error("Failed to list DNC entries",
			zap.String("search", search),
			zap.Error(err),
		)
		return nil, apperr.Internal(err)
	}

	return entries, nil
}

// Get returns one entry joined with its reason.
func (s *DNCService) Get(id string) (*models.DNCEntry, error) {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid entry id")
	}

	entry, err := s.dncRepo.GetEntryByID(entryID)
	if err != nil {
		logger.Log.Error("Failed to fetch DNC entry", zap.String("entry_id", id), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	if entry == nil {
		return nil, apperr.NotFound("number not found")
	}

	return entry, nil
}

// Update applies a partial update of phone, reason reference and notes. A
// supplied phone is re-checked for uniqueness excluding the entry itself; a
// supplied reason id must resolve.
func (s *DNCService) Update(id string, phone, reasonID *string, notes *string) (*models.DNCEntry, error) {
	entry, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if phone != nil {
		if fieldErr := validation.Phone(*phone, s.phoneRule); fieldErr != nil {
			return nil, apperr.Validation("invalid data", *fieldErr)
		}
		other, err := s.dncRepo.GetEntryByPhoneExcluding(*phone, entry.ID)
		if err != nil {
			logger.Log.Error("Failed to check phone existence", zap.Error(err))
			return nil, apperr.Internal(err)
		}
		if other != nil {
			logger.Log.Warn("DNC update rejected: phone already registered",
				zap.String("entry_id", id),
				zap.String("phone", *phone),
			)
			return nil, apperr.Duplicate("this number is already on the DNC list")
		}
		updates["phone"] = *phone
	}

	if reasonID != nil {
		reason, err := s.resolveReason(*reasonID)
		if err != nil {
			return nil, err
		}
		updates["reason_id"] = reason.ID
	}

	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) == 0 {
		return entry, nil
	}

	if err := s.dncRepo.UpdateEntry(entry.ID, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("this number is already on the DNC list")
		}
		logger.Log.Error("Failed to update DNC entry", zap.String("entry_id", id), zap.Error(err))
		return nil, apperr.Internal(err)
	}

	logger.Log.Info("DNC entry updated", zap.String("entry_id", id))

	return s.Get(id)
}

// Delete removes an entry permanently.
func (s *DNCService) Delete(id string) error {
	entry, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.dncRepo.DeleteEntry(entry.ID); err != nil {
		logger.Log.Error("Failed to delete DNC entry", zap.String("entry_id", id), zap.Error(err))
		return apperr.Internal(err)
	}

	logger.Log.Info("DNC entry deleted",
		zap.String("entry_id", id),
		zap.String("phone", entry.Phone),
	)

	return nil
}

// resolveReason parses and resolves a reason reference, failing with a
// referential conflict when it does not exist.
func (s *DNCService) resolveReason(reasonID string) (*models.Reason, error) {
	id, err := uuid.Parse(reasonID)
	if err != nil {
		return nil, apperr.Validation("invalid data",
			apperr.FieldError{Field: "reasonId", Message: "reason is required"})
	}

	reason, err := s.reasonRepo.GetReasonByID(id)
	if err != nil {
		logger.Log.Error("Failed to resolve reason", zap.String("reason_id", reasonID), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	if reason == nil {
		return nil, apperr.Referential("the referenced reason does not exist")
	}

	return reason, nil
}
