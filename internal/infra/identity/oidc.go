package identity

import (
	"context"
	"log/slog"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"

	"hummane-api/internal/pkg/config"
	"hummane-api/internal/pkg/errs"
)

// OIDCVerifier verifies provider-issued ID tokens against the configured
// issuer. Provider discovery is expensive and stateful, so it runs lazily
// and exactly once; concurrent logins share the same handle and a discovery
// failure is reported to every caller instead of being retried per request.
type OIDCVerifier struct {
	issuer  string
	resolve func() (*oidc.IDTokenVerifier, error)
}

func NewOIDCVerifier(cfg config.IdentityConfig) *OIDCVerifier {
	v := &OIDCVerifier{issuer: cfg.Issuer}
	v.resolve = sync.OnceValues(func() (*oidc.IDTokenVerifier, error) {
		// Discovery is shared across requests, so it is not bound to any
		// single request's context.
		provider, err := oidc.NewProvider(context.Background(), cfg.Issuer)
		if err != nil {
			slog.Error("identity provider discovery failed", "issuer", cfg.Issuer, "error", err.Error())
			return nil, errs.Wrap(err, "identity provider discovery failed")
		}
		slog.Info("identity provider initialized", "issuer", cfg.Issuer)
		return provider.Verifier(&oidc.Config{ClientID: cfg.Audience}), nil
	})
	return v
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*VerifiedIdentity, error) {
	verifier, err := v.resolve()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidToken)
	}

	idToken, err := verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidToken)
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, errs.Mark(err, ErrInvalidToken)
	}

	return &VerifiedIdentity{
		Subject: idToken.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
