package user

import (
	"time"

	"github.com/google/uuid"
)

// DefaultName is used when the identity provider supplies no display name.
const DefaultName = "Unknown User"

// User is the document model persisted in the users collection. Field names
// follow the store's wire format (camelCase), matching the query fields used
// for email and tenant lookups.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"password,omitempty"` // legacy field, bcrypt hash
	CompanyID    *uuid.UUID `json:"companyId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// NewFromIdentity builds a fresh local user for a verified external identity.
// The email is taken as the provider supplied it; format validation belongs
// to the record-creation path, not login. CompanyID is left unset; the
// tenant link is resolved separately.
func NewFromIdentity(email, name string, now time.Time) *User {
	if name == "" {
		name = DefaultName
	}
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
	}
}

// LinkCompany records the tenant link in memory. Persistence is the
// caller's responsibility.
func (u *User) LinkCompany(companyID uuid.UUID) {
	u.CompanyID = &companyID
}
