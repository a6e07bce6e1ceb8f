package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"astracms/internal/models/db_models"
	"astracms/pkg/utils"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	FindByID(ctx context.Context, id string) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	FindByResetToken(ctx context.Context, token string) (*db_models.Account, error)
	ListAll(ctx context.Context) ([]db_models.Account, error)
	Save(ctx context.Context, account *db_models.Account) error
	Delete(ctx context.Context, id string) error
	HasPermission(ctx context.Context, accountID string, permission string) (bool, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	account.Email = strings.ToLower(account.Email)
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindByID(ctx context.Context, id string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "email = ?", strings.ToLower(email)).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByResetToken(ctx context.Context, token string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "password_reset_token = ?", token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) ListAll(ctx context.Context) ([]db_models.Account, error) {
	var accounts []db_models.Account
	err := a.db.WithContext(ctx).Order("created_at DESC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save writes the full row, so fields cleared to nil go back to NULL. Codes
// and their expiries are cleared in the same statement as the state change
// they authorize.
func (a *accountRepository) Save(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Save(account).Error
}

func (a *accountRepository) Delete(ctx context.Context, id string) error {
	return a.db.WithContext(ctx).Delete(&db_models.Account{}, "id = ?", id).Error
}

// HasPermission backs the permission middleware with a fresh read.
func (a *accountRepository) HasPermission(ctx context.Context, accountID string, permission string) (bool, error) {
	account, err := a.FindByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	if account == nil {
		return false, utils.ErrAccountNotFound
	}
	if account.IsSuperAdmin() {
		return true, nil
	}
	return account.Permissions.Has(permission), nil
}
