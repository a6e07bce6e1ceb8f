package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"astracms/internal/infra"
	"astracms/internal/repositories"
)

var Module = fx.Provide(
	provideDB, provideAccountRepo)

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}
