package users_fx

import (
	"go.uber.org/fx"

	"astracms/internal/repositories"
	"astracms/internal/services"
)

var Module = fx.Provide(provideUserAdminService)

func provideUserAdminService(accountRepo repositories.AccountRepository) services.UserAdminServiceInterface {
	return services.NewUserAdminService(accountRepo)
}
