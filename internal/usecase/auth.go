package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"hummane-api/internal/domain/company"
	"hummane-api/internal/domain/user"
	"hummane-api/internal/infra"
	"hummane-api/internal/infra/identity"
	"hummane-api/internal/pkg/clock"
	"hummane-api/internal/pkg/errs"
	"hummane-api/internal/pkg/jwt"
)

var (
	ErrInvalidToken    = errs.New("invalid identity token")
	ErrMissingEmail    = errs.New("email claim is required")
	ErrTokenGeneration = errs.New("session token generation failed")
	ErrUserNotFound    = errs.New("user not found")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	List(ctx context.Context, companyID *uuid.UUID) ([]*user.User, error)
	SetCompany(ctx context.Context, userID, companyID uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*user.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*company.Company, error)
	Create(ctx context.Context, c *company.Company) error
	List(ctx context.Context) ([]*company.Company, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*company.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LoginResult struct {
	Token   string
	User    *user.User
	Company *company.Company
}

type AuthUseCase interface {
	Login(ctx context.Context, externalToken string) (*LoginResult, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*user.User, error)
}

type authUseCaseImpl struct {
	verifier   identity.Verifier
	users      UserRepository
	companies  CompanyRepository
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthUseCase(verifier identity.Verifier, users UserRepository, companies CompanyRepository, jwtService *jwt.Service, clk clock.Clock) AuthUseCase {
	return &authUseCaseImpl{
		verifier:   verifier,
		users:      users,
		companies:  companies,
		jwtService: jwtService,
		clock:      clk,
	}
}

// Login runs the strict verify -> sync -> resolve -> issue sequence. Steps
// are idempotent, so a retried login after a mid-flight failure converges on
// the same user and tenant link without rollback.
func (a *authUseCaseImpl) Login(ctx context.Context, externalToken string) (*LoginResult, error) {
	ident, err := a.verifier.Verify(ctx, externalToken)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidToken)
	}

	u, err := a.syncUser(ctx, ident)
	if err != nil {
		return nil, err
	}

	comp, u, err := a.resolveTenant(ctx, u)
	if err != nil {
		return nil, err
	}

	token, err := a.jwtService.GenerateToken(u.ID, u.Email, u.CompanyID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{Token: token, User: u, Company: comp}, nil
}

func (a *authUseCaseImpl) CurrentUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// syncUser finds the local user for a verified identity, creating one on
// first login. The provider's email is trusted as-is; only an absent email
// claim is rejected. An existing user's profile fields are never touched
// here.
func (a *authUseCaseImpl) syncUser(ctx context.Context, ident *identity.VerifiedIdentity) (*user.User, error) {
	email := strings.TrimSpace(ident.Email)
	if email == "" {
		return nil, ErrMissingEmail
	}

	existing, err := a.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}

	created := user.NewFromIdentity(email, ident.Name, a.clock.Now().UTC())
	if err := a.users.Create(ctx, created); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// Lost a concurrent first-login race; the winner's record is
			// the canonical one.
			return a.users.FindByEmail(ctx, email)
		}
		return nil, err
	}

	slog.Info("created user for first login", "user_id", created.ID, "email", created.Email)
	return created, nil
}

// resolveTenant determines the user's company. A user with companyId set
// keeps it even when the company document is missing; a user without one
// who owns a company gets the link repaired on the spot. The repaired user
// is returned so the session payload carries the fresh link.
func (a *authUseCaseImpl) resolveTenant(ctx context.Context, u *user.User) (*company.Company, *user.User, error) {
	if u.CompanyID != nil {
		comp, err := a.companies.FindByID(ctx, *u.CompanyID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// Dangling link: reported as no company, link left intact.
				return nil, u, nil
			}
			return nil, nil, err
		}
		return comp, u, nil
	}

	comp, err := a.companies.FindByOwner(ctx, u.ID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, u, nil
		}
		// A failed lookup is not "no company"; refusing here prevents
		// issuing a session with a wrongly absent tenant.
		return nil, nil, err
	}

	if err := a.users.SetCompany(ctx, u.ID, comp.ID); err != nil {
		return nil, nil, err
	}
	u.LinkCompany(comp.ID)

	slog.Info("repaired tenant link at login", "user_id", u.ID, "company_id", comp.ID)
	return comp, u, nil
}
