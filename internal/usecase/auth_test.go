//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"hummane-api/internal/domain/company"
	"hummane-api/internal/domain/user"
	"hummane-api/internal/infra"
	"hummane-api/internal/infra/docstore"
	"hummane-api/internal/infra/store"
	"hummane-api/internal/pkg/clock"
	"hummane-api/internal/pkg/jwt"
	"hummane-api/internal/usecase"
	"hummane-api/tests/common/builder"
	identitymock "hummane-api/tests/mock/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthUseCaseTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockCtrl     *gomock.Controller
	mockVerifier *identitymock.MockVerifier
	users        *store.UserStore
	companies    *store.CompanyStore
	jwtService   *jwt.Service
	clk          *clock.MockClock
	authUseCase  usecase.AuthUseCase
}

func (s *AuthUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockVerifier = identitymock.NewMockVerifier(s.mockCtrl)

	s.clk = clock.NewMockClock(time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC))
	docs := docstore.NewMemoryStore(docstore.WithUniqueField("users", "email"))
	s.users = store.NewUserStore(docs, s.clk)
	s.companies = store.NewCompanyStore(docs, s.clk)

	jwtService, err := jwt.NewService("test-secret", time.Hour)
	s.Require().NoError(err)
	s.jwtService = jwtService

	s.authUseCase = usecase.NewAuthUseCase(s.mockVerifier, s.users, s.companies, s.jwtService, s.clk)
}

func (s *AuthUseCaseTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthUseCaseSuite(t *testing.T) {
	suite.Run(t, new(AuthUseCaseTestSuite))
}

func (s *AuthUseCaseTestSuite) claimsOf(token string) *jwt.Claims {
	claims, err := s.jwtService.ValidateToken(token)
	s.Require().NoError(err)
	return claims
}

func (s *AuthUseCaseTestSuite) TestLoginFirstTime() {
	s.Run("success: creates a local user on first login", func() {
		ident := builder.NewIdentityBuilder().WithEmail("new@example.com").WithName("New User").Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil)

		result, err := s.authUseCase.Login(s.ctx, "ext-token")
		s.Require().NoError(err)

		s.Equal("new@example.com", result.User.Email)
		s.Equal("New User", result.User.Name)
		s.Nil(result.User.CompanyID)
		s.Nil(result.Company)

		claims := s.claimsOf(result.Token)
		s.Equal(result.User.ID.String(), claims.Subject)
		s.Equal("new@example.com", claims.Email)
		s.Nil(claims.CompanyID)

		persisted, err := s.users.FindByEmail(s.ctx, "new@example.com")
		s.Require().NoError(err)
		s.Equal(result.User.ID, persisted.ID)
	})

	s.Run("success: missing display name falls back to the default", func() {
		ident := builder.NewIdentityBuilder().WithEmail("anon@example.com").WithName("").Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil)

		result, err := s.authUseCase.Login(s.ctx, "ext-token")
		s.Require().NoError(err)
		s.Equal(user.DefaultName, result.User.Name)
	})

	s.Run("success: the provider email is accepted as-is, even without a TLD", func() {
		ident := builder.NewIdentityBuilder().WithEmail("svc-account@corp-internal").Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil)

		result, err := s.authUseCase.Login(s.ctx, "ext-token")
		s.Require().NoError(err)
		s.Equal("svc-account@corp-internal", result.User.Email)

		persisted, err := s.users.FindByEmail(s.ctx, "svc-account@corp-internal")
		s.Require().NoError(err)
		s.Equal(result.User.ID, persisted.ID)
	})
}

func (s *AuthUseCaseTestSuite) TestLoginReturning() {
	s.Run("success: reuses the existing user and never touches its profile", func() {
		existing := builder.NewUserBuilder().WithEmail("known@example.com").WithName("Original Name").BuildDomain()
		s.Require().NoError(s.users.Create(s.ctx, existing))

		ident := builder.NewIdentityBuilder().WithEmail("known@example.com").WithName("Changed At Provider").Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil)

		result, err := s.authUseCase.Login(s.ctx, "ext-token")
		s.Require().NoError(err)

		s.Equal(existing.ID, result.User.ID)
		s.Equal("Original Name", result.User.Name)

		all, err := s.users.List(s.ctx, nil)
		s.Require().NoError(err)
		s.Len(all, 1)
	})
}

func (s *AuthUseCaseTestSuite) TestLoginRejections() {
	s.Run("error: verifier rejection maps to ErrInvalidToken", func() {
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "bad-token").Return(nil, usecase.ErrInvalidToken)

		_, err := s.authUseCase.Login(s.ctx, "bad-token")
		s.ErrorIs(err, usecase.ErrInvalidToken)
	})

	s.Run("error: identity without email maps to ErrMissingEmail", func() {
		ident := builder.NewIdentityBuilder().WithoutEmail().Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil)

		_, err := s.authUseCase.Login(s.ctx, "ext-token")
		s.ErrorIs(err, usecase.ErrMissingEmail)
	})

	s.Run("error: no user is created when the email is missing", func() {
		ident := builder.NewIdentityBuilder().WithoutEmail().Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil)

		_, _ = s.authUseCase.Login(s.ctx, "ext-token")

		all, err := s.users.List(s.ctx, nil)
		s.Require().NoError(err)
		s.Empty(all)
	})
}

func (s *AuthUseCaseTestSuite) TestLoginTenantResolution() {
	s.Run("success: linked company is loaded and put in the session", func() {
		owner := builder.NewUserBuilder().WithEmail("owner@example.com").BuildDomain()
		comp, err := company.New("Acme Corp", owner.ID, s.clk.Now())
		s.Require().NoError(err)
		owner.LinkCompany(comp.ID)
		s.Require().NoError(s.users.Create(s.ctx, owner))
		s.Require().NoError(s.companies.Create(s.ctx, comp))

		ident := builder.NewIdentityBuilder().WithEmail("owner@example.com").Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil)

		result, err := s.authUseCase.Login(s.ctx, "ext-token")
		s.Require().NoError(err)

		s.Require().NotNil(result.Company)
		s.Equal(comp.ID, result.Company.ID)

		claims := s.claimsOf(result.Token)
		s.Require().NotNil(claims.CompanyID)
		s.Equal(comp.ID, *claims.CompanyID)
	})

	s.Run("success: unlinked owner gets the link repaired at login", func() {
		owner := builder.NewUserBuilder().WithEmail("healme@example.com").WithoutCompany().BuildDomain()
		s.Require().NoError(s.users.Create(s.ctx, owner))

		comp, err := company.New("Owned Corp", owner.ID, s.clk.Now())
		s.Require().NoError(err)
		s.Require().NoError(s.companies.Create(s.ctx, comp))

		ident := builder.NewIdentityBuilder().WithEmail("healme@example.com").Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil)

		result, err := s.authUseCase.Login(s.ctx, "ext-token")
		s.Require().NoError(err)

		s.Require().NotNil(result.Company)
		s.Equal(comp.ID, result.Company.ID)
		s.Require().NotNil(result.User.CompanyID)
		s.Equal(comp.ID, *result.User.CompanyID)

		// The repair is persisted, not just reflected in the response.
		persisted, err := s.users.FindByID(s.ctx, owner.ID)
		s.Require().NoError(err)
		s.Require().NotNil(persisted.CompanyID)
		s.Equal(comp.ID, *persisted.CompanyID)

		claims := s.claimsOf(result.Token)
		s.Require().NotNil(claims.CompanyID)
		s.Equal(comp.ID, *claims.CompanyID)
	})

	s.Run("success: logging in again after the repair changes nothing", func() {
		owner := builder.NewUserBuilder().WithEmail("healed@example.com").WithoutCompany().BuildDomain()
		s.Require().NoError(s.users.Create(s.ctx, owner))

		comp, err := company.New("Healed Corp", owner.ID, s.clk.Now())
		s.Require().NoError(err)
		s.Require().NoError(s.companies.Create(s.ctx, comp))

		ident := builder.NewIdentityBuilder().WithEmail("healed@example.com").Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil).Times(2)

		first, err := s.authUseCase.Login(s.ctx, "ext-token")
		s.Require().NoError(err)
		s.Require().NotNil(first.User.CompanyID)

		second, err := s.authUseCase.Login(s.ctx, "ext-token")
		s.Require().NoError(err)

		s.Equal(first.User.ID, second.User.ID)
		s.Require().NotNil(second.Company)
		s.Equal(comp.ID, second.Company.ID)
		s.Require().NotNil(second.User.CompanyID)
		s.Equal(*first.User.CompanyID, *second.User.CompanyID)

		persisted, err := s.users.FindByID(s.ctx, owner.ID)
		s.Require().NoError(err)
		s.Require().NotNil(persisted.CompanyID)
		s.Equal(comp.ID, *persisted.CompanyID)

		all, err := s.users.List(s.ctx, nil)
		s.Require().NoError(err)
		s.Len(all, 1)
	})

	s.Run("success: dangling company link yields no company but stays intact", func() {
		ghostCompanyID := uuid.New()
		u := builder.NewUserBuilder().WithEmail("dangling@example.com").WithCompanyID(ghostCompanyID).BuildDomain()
		s.Require().NoError(s.users.Create(s.ctx, u))

		ident := builder.NewIdentityBuilder().WithEmail("dangling@example.com").Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil)

		result, err := s.authUseCase.Login(s.ctx, "ext-token")
		s.Require().NoError(err)

		s.Nil(result.Company)

		persisted, err := s.users.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Require().NotNil(persisted.CompanyID)
		s.Equal(ghostCompanyID, *persisted.CompanyID)
	})

	s.Run("error: tenant lookup outage fails the login instead of dropping the tenant", func() {
		u := builder.NewUserBuilder().WithEmail("outage@example.com").WithoutCompany().BuildDomain()
		s.Require().NoError(s.users.Create(s.ctx, u))

		ident := builder.NewIdentityBuilder().WithEmail("outage@example.com").Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil)

		failing := &failingCompanyRepo{CompanyRepository: s.companies}
		authUseCase := usecase.NewAuthUseCase(s.mockVerifier, s.users, failing, s.jwtService, s.clk)

		_, err := authUseCase.Login(s.ctx, "ext-token")
		s.Require().Error(err)
		s.NotErrorIs(err, usecase.ErrInvalidToken)
		s.NotErrorIs(err, usecase.ErrMissingEmail)
	})
}

func (s *AuthUseCaseTestSuite) TestLoginCreateRace() {
	s.Run("success: losing a concurrent create converges on the winner", func() {
		winner := builder.NewUserBuilder().WithEmail("race@example.com").BuildDomain()
		s.Require().NoError(s.users.Create(s.ctx, winner))

		// Simulate the race: the initial lookup misses even though the
		// winner's insert has already landed.
		racing := &racingUserRepo{UserRepository: s.users, missesLeft: 1}
		authUseCase := usecase.NewAuthUseCase(s.mockVerifier, racing, s.companies, s.jwtService, s.clk)

		ident := builder.NewIdentityBuilder().WithEmail("race@example.com").Build()
		s.mockVerifier.EXPECT().Verify(gomock.Any(), "ext-token").Return(ident, nil)

		result, err := authUseCase.Login(s.ctx, "ext-token")
		s.Require().NoError(err)
		s.Equal(winner.ID, result.User.ID)

		all, err := s.users.List(s.ctx, nil)
		s.Require().NoError(err)
		s.Len(all, 1)
	})
}

func (s *AuthUseCaseTestSuite) TestCurrentUser() {
	s.Run("success: returns the stored user", func() {
		u := builder.NewUserBuilder().WithEmail("me@example.com").BuildDomain()
		s.Require().NoError(s.users.Create(s.ctx, u))

		got, err := s.authUseCase.CurrentUser(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal(u.Email, got.Email)
	})

	s.Run("error: unknown id maps to ErrUserNotFound", func() {
		_, err := s.authUseCase.CurrentUser(s.ctx, uuid.New())
		s.ErrorIs(err, usecase.ErrUserNotFound)
	})
}

// racingUserRepo forces the first email lookups to miss, mimicking a login
// that raced a concurrent insert of the same email.
type racingUserRepo struct {
	usecase.UserRepository
	missesLeft int
}

func (r *racingUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if r.missesLeft > 0 {
		r.missesLeft--
		return nil, infra.WrapRepoErr("user not found by email", nil, infra.KindNotFound)
	}
	return r.UserRepository.FindByEmail(ctx, email)
}

// failingCompanyRepo reports a transport failure on owner lookups.
type failingCompanyRepo struct {
	usecase.CompanyRepository
}

func (r *failingCompanyRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*company.Company, error) {
	return nil, infra.WrapRepoErr("connection reset", nil, infra.KindStoreFailure)
}
