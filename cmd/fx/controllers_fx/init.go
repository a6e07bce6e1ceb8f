package controllers_fx

import (
	"go.uber.org/fx"

	"astracms/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewUsersController))
