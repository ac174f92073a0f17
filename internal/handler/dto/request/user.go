package request

import "github.com/google/uuid"

type CreateUserRequest struct {
	Email     string     `json:"email" binding:"required,email"`
	Name      string     `json:"name" binding:"required"`
	Password  string     `json:"password" binding:"omitempty,min=8"`
	CompanyID *uuid.UUID `json:"companyId" binding:"omitempty"`
}
