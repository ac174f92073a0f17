//go:build unit

package user_test

import (
	"testing"
	"time"

	"hummane-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("accepts valid addresses", func(t *testing.T) {
		for _, s := range []string{"a@b.co", "user.name+tag@example.com", " padded@example.com "} {
			email, err := user.NewEmail(s)
			require.NoError(t, err, s)
			assert.NotEmpty(t, email.Value())
		}
	})

	t.Run("rejects invalid addresses", func(t *testing.T) {
		for _, s := range []string{"", "plainaddress", "@example.com", "user@", "user@host"} {
			_, err := user.NewEmail(s)
			assert.ErrorIs(t, err, user.ErrInvalidEmail, s)
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		email, err := user.NewEmail("  test@example.com  ")
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", email.Value())
	})
}

func TestNewFromIdentity(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	t.Run("keeps the provider display name", func(t *testing.T) {
		u := user.NewFromIdentity("test@example.com", "Jane Doe", now)
		assert.Equal(t, "Jane Doe", u.Name)
		assert.Equal(t, "test@example.com", u.Email)
		assert.Equal(t, now, u.CreatedAt)
		assert.Nil(t, u.CompanyID)
		assert.NotEqual(t, uuid.Nil, u.ID)
	})

	t.Run("falls back to the default name", func(t *testing.T) {
		u := user.NewFromIdentity("test@example.com", "", now)
		assert.Equal(t, user.DefaultName, u.Name)
	})

	t.Run("takes the email exactly as the provider supplied it", func(t *testing.T) {
		u := user.NewFromIdentity("odd-alias@internal", "Jane", now)
		assert.Equal(t, "odd-alias@internal", u.Email)
	})
}

func TestLinkCompany(t *testing.T) {
	u := user.NewFromIdentity("test@example.com", "Jane", time.Now().UTC())

	companyID := uuid.New()
	u.LinkCompany(companyID)

	require.NotNil(t, u.CompanyID)
	assert.Equal(t, companyID, *u.CompanyID)
}
