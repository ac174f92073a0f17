package usecase

import (
	"context"

	"github.com/google/uuid"

	"hummane-api/internal/domain/user"
	"hummane-api/internal/infra"
	"hummane-api/internal/pkg/clock"
	"hummane-api/internal/pkg/errs"
	"hummane-api/internal/pkg/password"
)

var ErrDuplicateEmail = errs.New("email already in use")

type CreateUserInput struct {
	Email     string
	Name      string
	Password  string
	CompanyID *uuid.UUID
}

type UserUseCase interface {
	Create(ctx context.Context, input CreateUserInput) (*user.User, error)
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	List(ctx context.Context, companyID *uuid.UUID) ([]*user.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*user.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userUseCaseImpl struct {
	users UserRepository
	clock clock.Clock
}

func NewUserUseCase(users UserRepository, clk clock.Clock) UserUseCase {
	return &userUseCaseImpl{users: users, clock: clk}
}

func (uc *userUseCaseImpl) Create(ctx context.Context, input CreateUserInput) (*user.User, error) {
	var v validationCollector
	email, err := user.NewEmail(input.Email)
	if err != nil {
		v.add("email", "must be a valid email address")
	}
	if input.Name == "" {
		v.add("name", "is required")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	u := user.NewFromIdentity(email.Value(), input.Name, uc.clock.Now().UTC())
	if input.Password != "" {
		hash, err := password.HashPassword(input.Password)
		if err != nil {
			return nil, errs.Wrap(err, "failed to hash password")
		}
		u.PasswordHash = hash
	}
	if input.CompanyID != nil {
		u.LinkCompany(*input.CompanyID)
	}

	if err := uc.users.Create(ctx, u); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrDuplicateEmail)
		}
		return nil, err
	}
	return u, nil
}

func (uc *userUseCaseImpl) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := uc.users.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (uc *userUseCaseImpl) List(ctx context.Context, companyID *uuid.UUID) ([]*user.User, error) {
	return uc.users.List(ctx, companyID)
}

func (uc *userUseCaseImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*user.User, error) {
	// The record id is the document key and never changes through a patch.
	delete(updates, "id")

	if raw, ok := updates["password"].(string); ok && raw != "" {
		hash, err := password.HashPassword(raw)
		if err != nil {
			return nil, errs.Wrap(err, "failed to hash password")
		}
		updates["password"] = hash
	}

	u, err := uc.users.Update(ctx, id, updates)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (uc *userUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.users.Delete(ctx, id)
}
