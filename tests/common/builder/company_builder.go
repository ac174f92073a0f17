//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"

	"hummane-api/internal/domain/company"
)

type CompanyBuilder struct {
	ID       uuid.UUID
	Name     string
	Industry string
	OwnerID  uuid.UUID
}

func NewCompanyBuilder() *CompanyBuilder {
	return &CompanyBuilder{
		ID:      uuid.New(),
		Name:    "Acme Corp",
		OwnerID: uuid.New(),
	}
}

func (b *CompanyBuilder) BuildDomain() *company.Company {
	return &company.Company{
		ID:        b.ID,
		Name:      b.Name,
		Industry:  b.Industry,
		OwnerID:   b.OwnerID,
		CreatedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
	}
}

func (b *CompanyBuilder) WithName(name string) *CompanyBuilder {
	b.Name = name
	return b
}

func (b *CompanyBuilder) WithOwnerID(ownerID uuid.UUID) *CompanyBuilder {
	b.OwnerID = ownerID
	return b
}
