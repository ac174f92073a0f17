package components

import (
	"hummane-api/internal/pkg/clock"
	"hummane-api/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewAuthUseCase,
		usecase.NewUserUseCase,
		usecase.NewCompanyUseCase,
		usecase.NewTokenValidator,
	),
)
