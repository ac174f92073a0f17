//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"

	"hummane-api/internal/domain/user"
)

type UserBuilder struct {
	ID        uuid.UUID
	Email     string
	Name      string
	CompanyID *uuid.UUID
	CreatedAt time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:        uuid.New(),
		Email:     "test@example.com",
		Name:      "Test User",
		CreatedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
	}
}

func (b *UserBuilder) BuildDomain() *user.User {
	return &user.User{
		ID:        b.ID,
		Email:     b.Email,
		Name:      b.Name,
		CompanyID: b.CompanyID,
		CreatedAt: b.CreatedAt,
	}
}

// Fluent builder methods
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

func (b *UserBuilder) WithCompanyID(companyID uuid.UUID) *UserBuilder {
	b.CompanyID = &companyID
	return b
}

func (b *UserBuilder) WithoutCompany() *UserBuilder {
	b.CompanyID = nil
	return b
}
