package testutil

import (
	"time"

	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/utils"
	"github.com/google/uuid"
)

// CreateTestUser builds a user with a real password hash.
func CreateTestUser(username, password string, role models.Role) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// DefaultAdminUser returns a ready-made admin account.
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("admin", "Admin123456", models.RoleAdmin)
}

// DefaultSellerUser returns a ready-made seller (USER role) account.
func DefaultSellerUser() (*models.User, error) {
	return CreateTestUser("seller", "Seller123456", models.RoleUser)
}

// CreateTestReason builds a reason with an upper-cased name, as the service
// would store it.
func CreateTestReason(name string) *models.Reason {
	return &models.Reason{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CreateTestEntry builds a DNC entry referencing the given reason.
func CreateTestEntry(phone string, reasonID uuid.UUID, notes *string) *models.DNCEntry {
	return &models.DNCEntry{
		ID:        uuid.New(),
		Phone:     phone,
		ReasonID:  reasonID,
		Notes:     notes,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CreateTestEntryAt builds an entry with an explicit creation time, for
// recent-window assertions.
func CreateTestEntryAt(phone string, reasonID uuid.UUID, createdAt time.Time) *models.DNCEntry {
	return &models.DNCEntry{
		ID:        uuid.New(),
		Phone:     phone,
		ReasonID:  reasonID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// StrPtr is a literal-friendly *string helper.
func StrPtr(s string) *string {
	return &s
}
