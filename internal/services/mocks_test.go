package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"astracms/internal/models/db_models"
	"astracms/pkg/utils"
)

// fakeAccountRepo is an in-memory stand-in for the gorm repository. It
// mirrors the (nil, nil) not-found convention.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*db_models.Account
	failWith error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*db_models.Account)}
}

func (f *fakeAccountRepo) clone(a *db_models.Account) *db_models.Account {
	cp := *a
	if a.EmailVerifyCode != nil {
		v := *a.EmailVerifyCode
		cp.EmailVerifyCode = &v
	}
	if a.EmailVerifyExpires != nil {
		v := *a.EmailVerifyExpires
		cp.EmailVerifyExpires = &v
	}
	if a.PasswordResetToken != nil {
		v := *a.PasswordResetToken
		cp.PasswordResetToken = &v
	}
	if a.PasswordResetExpires != nil {
		v := *a.PasswordResetExpires
		cp.PasswordResetExpires = &v
	}
	if a.LastLogin != nil {
		v := *a.LastLogin
		cp.LastLogin = &v
	}
	return &cp
}

func (f *fakeAccountRepo) Insert(ctx context.Context, account *db_models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now().Unix()
	account.CreatedAt = now
	account.UpdatedAt = now
	account.Email = strings.ToLower(account.Email)
	f.accounts[account.ID.String()] = f.clone(account)
	return nil
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id string) (*db_models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, nil
	}
	return f.clone(a), nil
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, a := range f.accounts {
		if a.Email == strings.ToLower(email) {
			return f.clone(a), nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindByResetToken(ctx context.Context, token string) (*db_models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, a := range f.accounts {
		if a.PasswordResetToken != nil && *a.PasswordResetToken == token {
			return f.clone(a), nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) ListAll(ctx context.Context) ([]db_models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]db_models.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		out = append(out, *f.clone(a))
	}
	return out, nil
}

func (f *fakeAccountRepo) Save(ctx context.Context, account *db_models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	account.UpdatedAt = time.Now().Unix()
	f.accounts[account.ID.String()] = f.clone(account)
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) HasPermission(ctx context.Context, accountID string, permission string) (bool, error) {
	a, err := f.FindByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	if a == nil {
		return false, utils.ErrAccountNotFound
	}
	if a.IsSuperAdmin() {
		return true, nil
	}
	return a.Permissions.Has(permission), nil
}

// stored reads the canonical copy back for assertions.
func (f *fakeAccountRepo) stored(id string) *db_models.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil
	}
	return f.clone(a)
}

// fakeMailService records sends; lifecycle code dispatches them on
// goroutines, so assertions go through Eventually.
type fakeMailService struct {
	mu            sync.Mutex
	verifications []string // codes, in order
	resets        []string // tokens, in order
	welcomes      int
	adminNotices  int
}

func newFakeMailService() *fakeMailService {
	return &fakeMailService{}
}

func (m *fakeMailService) SendVerificationEmail(to, name, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifications = append(m.verifications, code)
	return nil
}

func (m *fakeMailService) SendPasswordResetEmail(to, name, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, token)
	return nil
}

func (m *fakeMailService) SendWelcomeEmail(to, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes++
	return nil
}

func (m *fakeMailService) SendAdminNotification(name, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adminNotices++
	return nil
}

func (m *fakeMailService) verificationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.verifications)
}

func (m *fakeMailService) resetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.resets)
}

func (m *fakeMailService) welcomeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.welcomes
}

func (m *fakeMailService) adminNoticeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adminNotices
}
