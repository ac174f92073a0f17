//go:build unit || e2e

package builder

import (
	"hummane-api/internal/infra/identity"
)

type IdentityBuilder struct {
	Subject string
	Email   string
	Name    string
}

func NewIdentityBuilder() *IdentityBuilder {
	return &IdentityBuilder{
		Subject: "provider-subject-1",
		Email:   "test@example.com",
		Name:    "Test User",
	}
}

func (b *IdentityBuilder) Build() *identity.VerifiedIdentity {
	return &identity.VerifiedIdentity{
		Subject: b.Subject,
		Email:   b.Email,
		Name:    b.Name,
	}
}

func (b *IdentityBuilder) WithEmail(email string) *IdentityBuilder {
	b.Email = email
	return b
}

func (b *IdentityBuilder) WithName(name string) *IdentityBuilder {
	b.Name = name
	return b
}

func (b *IdentityBuilder) WithoutEmail() *IdentityBuilder {
	b.Email = ""
	return b
}
