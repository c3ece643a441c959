package models

import (
	"time"

	"github.com/google/uuid"
)

// DNCEntry is one blocked phone number. The phone value is globally unique
// and every entry references exactly one Reason; the foreign key is RESTRICT
// so a referenced reason cannot be deleted out from under its entries.
type DNCEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	ReasonID  uuid.UUID `gorm:"type:uuid;not null;index" json:"reason_id"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reason Reason `gorm:"foreignKey:ReasonID;constraint:OnDelete:RESTRICT" json:"reason"`
}

// TableName pins the table name; the default naming strategy is unstable
// around the DNC initialism.
func (DNCEntry) TableName() string {
	return "dnc_entries"
}
