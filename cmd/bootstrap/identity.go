package bootstrap

import (
	"hummane-api/internal/infra/identity"
	"hummane-api/internal/pkg/config"

	"go.uber.org/fx"
)

var IdentityModule = fx.Module("identity",
	fx.Provide(
		fx.Annotate(
			NewVerifier,
			fx.As(new(identity.Verifier)),
		),
	),
)

func NewVerifier(cfg config.Config) *identity.OIDCVerifier {
	return identity.NewOIDCVerifier(cfg.Identity)
}
