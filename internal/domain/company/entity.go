package company

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingName  = errors.New("company name is required")
	ErrMissingOwner = errors.New("company owner is required")
)

// Company is the tenant document model. OwnerID must reference an existing
// user; a user's companyId pointing back at this company is repaired
// opportunistically at login, not enforced here.
type Company struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Industry  string     `json:"industry,omitempty"`
	Size      string     `json:"size,omitempty"`
	Currency  string     `json:"currency,omitempty"`
	Timezone  string     `json:"timezone,omitempty"`
	OwnerID   uuid.UUID  `json:"ownerId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func New(name string, ownerID uuid.UUID, now time.Time) (*Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingName
	}
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	return &Company{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
	}, nil
}
