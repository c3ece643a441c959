package repository

import (
	"errors"
	"time"

	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DNCRepository struct {
	db *gorm.DB
}

func NewDNCRepository(db *gorm.DB) *DNCRepository {
	return &DNCRepository{db: db}
}

func (r *DNCRepository) CreateEntry(entry *models.DNCEntry) error {
	return r.db.Create(entry).Error
}

// GetEntryByID retrieves an entry joined with its reason.
func (r *DNCRepository) GetEntryByID(id uuid.UUID) (*models.DNCEntry, error) {
	var entry models.DNCEntry
	err := r.db.Preload("Reason").Where("id = ?", id).First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}

func (r *DNCRepository) GetEntryByPhone(phone string) (*models.DNCEntry, error) {
	var entry models.DNCEntry
	err := r.db.Where("phone = ?", phone).First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}

// GetEntryByPhoneExcluding looks a phone up while skipping one entry, for
// uniqueness re-checks on update.
func (r *DNCRepository) GetEntryByPhoneExcluding(phone string, excludeID uuid.UUID) (*models.DNCEntry, error) {
	var entry models.DNCEntry
	err := r.db.Where("phone = ? AND id <> ?", phone, excludeID).First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}

// ListEntries returns entries joined with reasons, newest first, optionally
// filtered by a phone/notes substring, capped at limit.
func (r *DNCRepository) ListEntries(search string, limit int) ([]models.DNCEntry, error) {
	var entries []models.DNCEntry

	query := r.db.Preload("Reason").Order("created_at DESC").Limit(limit)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("phone LIKE ? OR notes LIKE ?", pattern, pattern)
	}

	err := query.Find(&entries).Error
	return entries, err
}

// UpdateEntry persists the given columns on an entry.
func (r *DNCRepository) UpdateEntry(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.DNCEntry{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteEntry removes the entry permanently.
func (r *DNCRepository) DeleteEntry(id uuid.UUID) error {
	return r.db.Delete(&models.DNCEntry{}, "id = ?", id).Error
}

func (r *DNCRepository) CountEntries() (int64, error) {
	var count int64
	err := r.db.Model(&models.DNCEntry{}).Count(&count).Error
	return count, err
}

// CountEntriesSince counts entries created at or after the given instant.
func (r *DNCRepository) CountEntriesSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.DNCEntry{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
