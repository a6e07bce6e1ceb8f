package auth_fx

import (
	"os"

	"go.uber.org/fx"

	"astracms/internal/repositories"
	"astracms/internal/services"
)

var Module = fx.Provide(
	provideJWTSecret, provideAuthService)

// JWTSecret is a named type so fx can tell the signing key apart from any
// other []byte in the graph.
type JWTSecret []byte

func provideJWTSecret() JWTSecret {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}
	return JWTSecret(secret)
}

func provideAuthService(accountRepo repositories.AccountRepository, mailService services.IMailService, secret JWTSecret) services.AuthServiceInterface {
	return services.NewAuthService(accountRepo, mailService, []byte(secret))
}
