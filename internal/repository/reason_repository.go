package repository

import (
	"errors"

	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReasonRepository struct {
	db *gorm.DB
}

func NewReasonRepository(db *gorm.DB) *ReasonRepository {
	return &ReasonRepository{db: db}
}

func (r *ReasonRepository) CreateReason(reason *models.Reason) error {
	return r.db.Create(reason).Error
}

func (r *ReasonRepository) GetReasonByID(id uuid.UUID) (*models.Reason, error) {
	var reason models.Reason
	err := r.db.Where("id = ?", id).First(&reason).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &reason, nil
}

func (r *ReasonRepository) GetReasonByName(name string) (*models.Reason, error) {
	var reason models.Reason
	err := r.db.Where("name = ?", name).First(&reason).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &reason, nil
}

// GetAllWithCounts returns every reason with its count of referencing DNC
// entries, ordered alphabetically.
func (r *ReasonRepository) GetAllWithCounts() ([]models.ReasonWithCount, error) {
	var reasons []models.ReasonWithCount
	err := r.db.Model(&models.Reason{}).
		Select("reasons.*, (SELECT COUNT(*) FROM dnc_entries WHERE dnc_entries.reason_id = reasons.id) AS dnc_count").
		Order("reasons.name ASC").
		Scan(&reasons).Error
	if err != nil {
		return nil, err
	}
	return reasons, nil
}

// CountDNCEntries returns how many DNC entries reference the reason.
func (r *ReasonRepository) CountDNCEntries(reasonID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.DNCEntry{}).Where("reason_id = ?", reasonID).Count(&count).Error
	return count, err
}

// DeleteReason removes the reason permanently. Callers must check the
// dependent count first; the RESTRICT constraint is the backstop.
func (r *ReasonRepository) DeleteReason(id uuid.UUID) error {
	return r.db.Delete(&models.Reason{}, "id = ?", id).Error
}

func (r *ReasonRepository) CountReasons() (int64, error) {
	var count int64
	err := r.db.Model(&models.Reason{}).Count(&count).Error
	return count, err
}

// CountsByReason returns (reason name, referencing entry count) rows ordered
// by count descending, for the reports rollup.
func (r *ReasonRepository) CountsByReason() ([]models.ReasonCount, error) {
	var rows []models.ReasonCount
	err := r.db.Table("reasons").
		Select("reasons.name AS name, COUNT(dnc_entries.id) AS count").
		Joins("LEFT JOIN dnc_entries ON dnc_entries.reason_id = reasons.id").
		Group("reasons.id, reasons.name").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
