package response

import (
	"time"

	"github.com/google/uuid"

	"hummane-api/internal/domain/company"
)

type CompanyResponse struct {
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

func FromCompany(c *company.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Industry:  c.Industry,
		Size:      c.Size,
		Currency:  c.Currency,
		Timezone:  c.Timezone,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromCompanies(companies []*company.Company) []*CompanyResponse {
	result := make([]*CompanyResponse, len(companies))
	for i, c := range companies {
		result[i] = FromCompany(c)
	}
	return result
}
