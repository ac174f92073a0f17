//go:build unit

package store_test

import (
	"context"
	"testing"
	"time"

	"hummane-api/internal/domain/user"
	"hummane-api/internal/infra"
	"hummane-api/internal/infra/docstore"
	"hummane-api/internal/infra/store"
	"hummane-api/internal/pkg/clock"
	"hummane-api/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type UserStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	clk   *clock.MockClock
	users *store.UserStore
}

func (s *UserStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clk = clock.NewMockClock(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC))
	docs := docstore.NewMemoryStore(docstore.WithUniqueField("users", "email"))
	s.users = store.NewUserStore(docs, s.clk)
}

func TestUserStoreSuite(t *testing.T) {
	suite.Run(t, new(UserStoreTestSuite))
}

func (s *UserStoreTestSuite) TestCreateAndFind() {
	u := builder.NewUserBuilder().WithEmail("roundtrip@example.com").BuildDomain()
	s.Require().NoError(s.users.Create(s.ctx, u))

	s.Run("success: FindByID round-trips the document", func() {
		got, err := s.users.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Empty(cmp.Diff(u, got))
	})

	s.Run("success: FindByEmail locates the same document", func() {
		got, err := s.users.FindByEmail(s.ctx, "roundtrip@example.com")
		s.Require().NoError(err)
		s.Empty(cmp.Diff(u, got))
	})

	s.Run("error: FindByEmail miss is KindNotFound", func() {
		_, err := s.users.FindByEmail(s.ctx, "nobody@example.com")
		s.True(infra.IsKind(err, infra.KindNotFound))
	})

	s.Run("error: second user with the same email is KindDuplicateKey", func() {
		dup := builder.NewUserBuilder().WithEmail("roundtrip@example.com").BuildDomain()
		err := s.users.Create(s.ctx, dup)
		s.True(infra.IsKind(err, infra.KindDuplicateKey))
	})
}

func (s *UserStoreTestSuite) TestSetCompany() {
	u := builder.NewUserBuilder().WithEmail("link@example.com").WithoutCompany().BuildDomain()
	s.Require().NoError(s.users.Create(s.ctx, u))

	companyID := uuid.New()
	s.Require().NoError(s.users.SetCompany(s.ctx, u.ID, companyID))

	s.Run("success: only the tenant link and timestamp change", func() {
		got, err := s.users.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)

		s.Require().NotNil(got.CompanyID)
		s.Equal(companyID, *got.CompanyID)
		s.Require().NotNil(got.UpdatedAt)
		s.Equal(s.clk.Now(), *got.UpdatedAt)

		// Everything else survives the merge untouched.
		want := *u
		want.CompanyID = got.CompanyID
		want.UpdatedAt = got.UpdatedAt
		s.Empty(cmp.Diff(&want, got))
	})

	s.Run("success: repeating the link is idempotent", func() {
		s.Require().NoError(s.users.SetCompany(s.ctx, u.ID, companyID))

		got, err := s.users.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal(companyID, *got.CompanyID)
	})
}

func (s *UserStoreTestSuite) TestListByCompany() {
	companyID := uuid.New()
	inCompany := builder.NewUserBuilder().WithEmail("in@example.com").WithCompanyID(companyID).BuildDomain()
	outside := builder.NewUserBuilder().WithEmail("out@example.com").BuildDomain()
	s.Require().NoError(s.users.Create(s.ctx, inCompany))
	s.Require().NoError(s.users.Create(s.ctx, outside))

	got, err := s.users.List(s.ctx, &companyID)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("in@example.com", got[0].Email)
}

func (s *UserStoreTestSuite) TestUpdate() {
	u := &user.User{
		ID:        uuid.New(),
		Email:     "patch@example.com",
		Name:      "Before",
		CreatedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.users.Create(s.ctx, u))

	s.Run("success: merges the patch and stamps updatedAt", func() {
		got, err := s.users.Update(s.ctx, u.ID, map[string]any{"name": "After"})
		s.Require().NoError(err)
		s.Equal("After", got.Name)
		s.Equal("patch@example.com", got.Email)
		s.Require().NotNil(got.UpdatedAt)
		s.Equal(s.clk.Now(), *got.UpdatedAt)
	})

	s.Run("error: unknown id is KindNotFound", func() {
		_, err := s.users.Update(s.ctx, uuid.New(), map[string]any{"name": "X"})
		s.True(infra.IsKind(err, infra.KindNotFound))
	})
}
