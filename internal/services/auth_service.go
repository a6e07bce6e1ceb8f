package services

import (
	"context"
	"log"
	"time"

	"astracms/internal/models/db_models"
	"astracms/internal/models/request_models"
	"astracms/internal/models/response_models"
	"astracms/internal/repositories"
	"astracms/pkg/utils"
)

// Verification codes expire after 15 minutes on every path, including the
// one issued at registration. Reset tokens live for an hour.
const (
	verifyCodeTTL = 15 * time.Minute
	resetTokenTTL = time.Hour
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req request_models.RegisterRequest) (*response_models.RegisteredUser, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error)
	CurrentUser(ctx context.Context, accountID string) (*response_models.SessionUser, error)
	ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error
	VerifyEmail(ctx context.Context, email, code string) error
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	CheckStatus(ctx context.Context, email string) (*response_models.AccountStatusResponse, error)
}

type AuthService struct {
	accountRepo repositories.AccountRepository
	mailService IMailService
	jwtSecret   []byte
}

func NewAuthService(accountRepo repositories.AccountRepository, mailService IMailService, jwtSecret []byte) AuthServiceInterface {
	return &AuthService{
		accountRepo: accountRepo,
		mailService: mailService,
		jwtSecret:   jwtSecret,
	}
}

// dispatch sends mail without holding up the lifecycle transition. Delivery
// failure is logged and never surfaces to the caller.
func dispatch(what string, send func() error) {
	go func() {
		if err := send(); err != nil {
			log.Printf("Failed to send %s: %v", what, err)
		}
	}()
}

func (s *AuthService) Register(ctx context.Context, req request_models.RegisterRequest) (*response_models.RegisteredUser, error) {
	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	expires := time.Now().Add(verifyCodeTTL)

	perms := db_models.DefaultPermissions()
	account := &db_models.Account{
		Email:              req.Email,
		PasswordHash:       passwordHash,
		Name:               req.Name,
		Role:               db_models.RoleAdmin,
		Status:             db_models.StatusPending,
		Permissions:        perms,
		IsEmailVerified:    false,
		EmailVerifyCode:    &code,
		EmailVerifyExpires: &expires,
	}

	if err := s.accountRepo.Insert(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	dispatch("admin notification", func() error {
		return s.mailService.SendAdminNotification(account.Name, account.Email)
	})
	dispatch("verification email", func() error {
		return s.mailService.SendVerificationEmail(account.Email, account.Name, code)
	})

	user := response_models.ToRegisteredUser(account)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error) {
	account, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	// Verification is checked before status.
	if !account.IsEmailVerified {
		return nil, utils.ErrEmailNotVerified
	}
	switch account.Status {
	case db_models.StatusActive:
	case db_models.StatusPending:
		return nil, utils.ErrPendingApproval
	default:
		// Anything that is not explicitly active cannot log in.
		return nil, utils.ErrAccountSuspended
	}

	now := time.Now()
	account.LastLogin = &now
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	token, err := utils.CreateToken(account.ID.String(), account.Email, account.Role, s.jwtSecret)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.LoginResponse{
		Token: token,
		User:  response_models.ToSessionUser(account),
	}, nil
}

// CurrentUser backs the token-verification endpoint with a fresh read so the
// response carries current permissions, not the token's stale view.
func (s *AuthService) CurrentUser(ctx context.Context, accountID string) (*response_models.SessionUser, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	user := response_models.ToSessionUser(account)
	return &user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, currentPassword); err != nil {
		return utils.ErrWrongPassword
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}

	account.PasswordHash = newHash
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	if account.IsEmailVerified {
		return utils.ErrAlreadyVerified
	}
	if account.EmailVerifyCode == nil || *account.EmailVerifyCode != code {
		return utils.ErrInvalidCode
	}
	if account.EmailVerifyExpires == nil || time.Now().After(*account.EmailVerifyExpires) {
		return utils.ErrExpiredCode
	}

	// Code and expiry are cleared in the same write that flips the flag, so
	// a replay has nothing left to match.
	account.IsEmailVerified = true
	account.EmailVerifyCode = nil
	account.EmailVerifyExpires = nil
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	dispatch("welcome email", func() error {
		return s.mailService.SendWelcomeEmail(account.Email, account.Name)
	})
	return nil
}

// ResendVerification returns nil for unknown emails; the handler answers
// with the same generic message either way so registered addresses cannot
// be enumerated.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return nil
	}

	if account.IsEmailVerified {
		return utils.ErrAlreadyVerified
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return utils.ErrDatabaseError
	}
	expires := time.Now().Add(verifyCodeTTL)

	account.EmailVerifyCode = &code
	account.EmailVerifyExpires = &expires
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	dispatch("verification email", func() error {
		return s.mailService.SendVerificationEmail(account.Email, account.Name, code)
	})
	return nil
}

// ForgotPassword likewise never reveals whether the email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return nil
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return utils.ErrDatabaseError
	}
	expires := time.Now().Add(resetTokenTTL)

	account.PasswordResetToken = &token
	account.PasswordResetExpires = &expires
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	dispatch("password reset email", func() error {
		return s.mailService.SendPasswordResetEmail(account.Email, account.Name, token)
	})
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	// Strength is checked before the token is touched: a weak password must
	// leave the token usable for a later valid attempt.
	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	account, err := s.accountRepo.FindByResetToken(ctx, token)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrInvalidResetToken
	}
	if account.PasswordResetExpires == nil || time.Now().After(*account.PasswordResetExpires) {
		return utils.ErrExpiredResetToken
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}

	account.PasswordHash = newHash
	account.PasswordResetToken = nil
	account.PasswordResetExpires = nil
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *AuthService) CheckStatus(ctx context.Context, email string) (*response_models.AccountStatusResponse, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	return &response_models.AccountStatusResponse{
		Status:          account.Status,
		IsEmailVerified: account.IsEmailVerified,
	}, nil
}
