package models

import (
	"time"

	"github.com/google/uuid"
)

// Reason is a named block-justification category. Names are stored
// upper-cased and unique.
type Reason struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReasonWithCount is the list shape: a reason plus how many DNC entries
// reference it.
type ReasonWithCount struct {
	Reason
	DNCCount int64 `json:"dnc_count"`
}

// ReasonCount is one row of the per-reason reports breakdown.
type ReasonCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
