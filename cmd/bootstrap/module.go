package bootstrap

import (
	"hummane-api/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	IdentityModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
