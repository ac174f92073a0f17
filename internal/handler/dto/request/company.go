package request

import "github.com/google/uuid"

type CreateCompanyRequest struct {
	Name     string    `json:"name" binding:"required"`
	Industry string    `json:"industry"`
	Size     string    `json:"size"`
	Currency string    `json:"currency"`
	Timezone string    `json:"timezone"`
	OwnerID  uuid.UUID `json:"ownerId" binding:"required"`
}
