package usecase

import (
	"github.com/google/uuid"

	"hummane-api/internal/pkg/errs"
	"hummane-api/internal/pkg/jwt"
)

var ErrInvalidSession = errs.New("invalid session token")

// Identity is the authenticated principal attached to a request after the
// session guard accepts its token.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	CompanyID *uuid.UUID
}

type TokenValidator interface {
	Validate(tokenString string) (*Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (v *tokenValidatorImpl) Validate(tokenString string) (*Identity, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSession)
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSession)
	}

	return &Identity{
		UserID:    userID,
		Email:     claims.Email,
		CompanyID: claims.CompanyID,
	}, nil
}
