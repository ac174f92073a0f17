package bootstrap

import (
	"log/slog"
	"time"

	"hummane-api/internal/pkg/config"
	"hummane-api/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

// devFallbackSecret keeps local development friction-free. Release mode
// refuses to start without an explicit secret.
const devFallbackSecret = "hummane-dev-secret"

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		panic("invalid JWT_DURATION: " + err.Error())
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		if gin.Mode() == gin.ReleaseMode {
			return nil, jwt.ErrMissingSecret
		}
		slog.Warn("JWT_SECRET is not set, using development fallback secret")
		secret = devFallbackSecret
	}

	return jwt.NewService(secret, duration)
}
