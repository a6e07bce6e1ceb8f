package services

import (
	"context"

	"astracms/internal/models/db_models"
	"astracms/internal/models/request_models"
	"astracms/internal/models/response_models"
	"astracms/internal/repositories"
	"astracms/pkg/utils"
)

// UserAdminServiceInterface is the super_admin-only user directory. Callers
// can never change their own status or remove their own account.
type UserAdminServiceInterface interface {
	ListUsers(ctx context.Context) ([]response_models.AccountResponse, error)
	GetUser(ctx context.Context, id string) (*response_models.AccountResponse, error)
	UpdateUser(ctx context.Context, callerID, id string, req request_models.UpdateUserRequest) (*response_models.AccountResponse, error)
	DeleteUser(ctx context.Context, callerID, id string) error
	ActivateUser(ctx context.Context, callerID, id string) (*response_models.AccountResponse, error)
	SuspendUser(ctx context.Context, callerID, id string) (*response_models.AccountResponse, error)
}

type UserAdminService struct {
	accountRepo repositories.AccountRepository
}

func NewUserAdminService(accountRepo repositories.AccountRepository) UserAdminServiceInterface {
	return &UserAdminService{
		accountRepo: accountRepo,
	}
}

func (s *UserAdminService) ListUsers(ctx context.Context) ([]response_models.AccountResponse, error) {
	accounts, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	users := make([]response_models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		users = append(users, response_models.ToAccountResponse(&accounts[i]))
	}
	return users, nil
}

func (s *UserAdminService) GetUser(ctx context.Context, id string) (*response_models.AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	user := response_models.ToAccountResponse(account)
	return &user, nil
}

func (s *UserAdminService) UpdateUser(ctx context.Context, callerID, id string, req request_models.UpdateUserRequest) (*response_models.AccountResponse, error) {
	if req.Status != nil && callerID == id {
		return nil, utils.ErrSelfAction
	}

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Status != nil {
		account.Status = *req.Status
	}
	if req.Role != nil {
		account.Role = *req.Role
	}
	if req.Permissions != nil {
		account.Permissions = *req.Permissions
	}

	// Role and permission set are never allowed to diverge for super_admin:
	// any write that leaves the role at super_admin carries the full set.
	if account.IsSuperAdmin() {
		account.Permissions = db_models.SuperAdminPermissions()
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := response_models.ToAccountResponse(account)
	return &user, nil
}

func (s *UserAdminService) DeleteUser(ctx context.Context, callerID, id string) error {
	if callerID == id {
		return utils.ErrSelfAction
	}

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	// Hard delete, no tombstone.
	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *UserAdminService) ActivateUser(ctx context.Context, callerID, id string) (*response_models.AccountResponse, error) {
	return s.setStatus(ctx, callerID, id, db_models.StatusActive)
}

func (s *UserAdminService) SuspendUser(ctx context.Context, callerID, id string) (*response_models.AccountResponse, error) {
	return s.setStatus(ctx, callerID, id, db_models.StatusSuspended)
}

func (s *UserAdminService) setStatus(ctx context.Context, callerID, id, status string) (*response_models.AccountResponse, error) {
	if callerID == id {
		return nil, utils.ErrSelfAction
	}

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	account.Status = status
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := response_models.ToAccountResponse(account)
	return &user, nil
}
