// Package identity wraps the external identity provider. The provider
// issues the opaque tokens presented at login; this package verifies them
// and yields the decoded identity used to establish a local user.
package identity

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken covers rejected tokens (expired, forged, wrong
	// audience) and provider-side client state that could not be
	// established.
	ErrInvalidToken = errors.New("invalid identity token")
)

// VerifiedIdentity is the decoded, provider-origin identity. It exists only
// for the duration of a login call and is never persisted as-is.
type VerifiedIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*VerifiedIdentity, error)
}
