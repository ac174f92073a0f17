package usecase

import (
	"context"

	"github.com/google/uuid"

	"hummane-api/internal/domain/company"
	"hummane-api/internal/infra"
	"hummane-api/internal/pkg/clock"
	"hummane-api/internal/pkg/errs"
)

var ErrCompanyNotFound = errs.New("company not found")

type CreateCompanyInput struct {
	Name     string
	Industry string
	Size     string
	Currency string
	Timezone string
	OwnerID  uuid.UUID
}

type CompanyUseCase interface {
	Create(ctx context.Context, input CreateCompanyInput) (*company.Company, error)
	Get(ctx context.Context, id uuid.UUID) (*company.Company, error)
	List(ctx context.Context) ([]*company.Company, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*company.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyUseCaseImpl struct {
	companies CompanyRepository
	users     UserRepository
	clock     clock.Clock
}

func NewCompanyUseCase(companies CompanyRepository, users UserRepository, clk clock.Clock) CompanyUseCase {
	return &companyUseCaseImpl{companies: companies, users: users, clock: clk}
}

func (uc *companyUseCaseImpl) Create(ctx context.Context, input CreateCompanyInput) (*company.Company, error) {
	var v validationCollector
	if input.Name == "" {
		v.add("name", "is required")
	}
	if input.OwnerID == uuid.Nil {
		v.add("ownerId", "is required")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	// The owner link must point at a real user before the company exists,
	// otherwise login-time tenant resolution can never find it.
	if _, err := uc.users.FindByID(ctx, input.OwnerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, &ValidationError{Issues: []FieldIssue{
				{Field: "ownerId", Message: "must reference an existing user"},
			}}
		}
		return nil, err
	}

	c, err := company.New(input.Name, input.OwnerID, uc.clock.Now().UTC())
	if err != nil {
		return nil, err
	}
	c.Industry = input.Industry
	c.Size = input.Size
	c.Currency = input.Currency
	c.Timezone = input.Timezone

	if err := uc.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *companyUseCaseImpl) Get(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	c, err := uc.companies.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return c, nil
}

func (uc *companyUseCaseImpl) List(ctx context.Context) ([]*company.Company, error) {
	return uc.companies.List(ctx)
}

func (uc *companyUseCaseImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*company.Company, error) {
	delete(updates, "id")

	c, err := uc.companies.Update(ctx, id, updates)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return c, nil
}

func (uc *companyUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.companies.Delete(ctx, id)
}
