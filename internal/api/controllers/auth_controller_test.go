package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astracms/internal/models/db_models"
	"astracms/internal/services"
	"astracms/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryRepo is just enough of the repository for routing the public flows.
type memoryRepo struct {
	mu       sync.Mutex
	accounts map[string]*db_models.Account
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{accounts: make(map[string]*db_models.Account)}
}

func (m *memoryRepo) Insert(ctx context.Context, a *db_models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.Email = strings.ToLower(a.Email)
	cp := *a
	m.accounts[a.ID.String()] = &cp
	return nil
}

func (m *memoryRepo) FindByID(ctx context.Context, id string) (*db_models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m *memoryRepo) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == strings.ToLower(email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) FindByResetToken(ctx context.Context, token string) (*db_models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.PasswordResetToken != nil && *a.PasswordResetToken == token {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) ListAll(ctx context.Context) ([]db_models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]db_models.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (m *memoryRepo) Save(ctx context.Context, a *db_models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.accounts[a.ID.String()] = &cp
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, id)
	return nil
}

func (m *memoryRepo) HasPermission(ctx context.Context, accountID string, permission string) (bool, error) {
	a, err := m.FindByID(ctx, accountID)
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

type noopMailer struct{}

func (noopMailer) SendVerificationEmail(to, name, code string) error   { return nil }
func (noopMailer) SendPasswordResetEmail(to, name, token string) error { return nil }
func (noopMailer) SendWelcomeEmail(to, name string) error              { return nil }
func (noopMailer) SendAdminNotification(name, email string) error      { return nil }

func newTestRouter(repo *memoryRepo) *gin.Engine {
	svc := services.NewAuthService(repo, noopMailer{}, []byte("test-secret"))
	controller := NewAuthController(svc)

	r := gin.New()
	r.POST("/auth/login", controller.Login)
	r.POST("/auth/resend-verification", controller.ResendVerification)
	r.POST("/auth/forgot-password", controller.ForgotPassword)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedMemoryAccount(t *testing.T, repo *memoryRepo, email, status string, verified bool) *db_models.Account {
	t.Helper()
	hash, err := utils.HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	account := &db_models.Account{
		Email:           email,
		PasswordHash:    hash,
		Name:            "Test User",
		Role:            db_models.RoleAdmin,
		Status:          status,
		Permissions:     db_models.DefaultPermissions(),
		IsEmailVerified: verified,
	}
	require.NoError(t, repo.Insert(context.Background(), account))
	return account
}

// The success bodies must be byte-identical whether or not the email is
// registered, or the endpoint could be used to enumerate accounts.
func TestForgotPassword_NoEnumeration(t *testing.T) {
	repo := newMemoryRepo()
	seedMemoryAccount(t, repo, "known@x.com", db_models.StatusActive, true)
	r := newTestRouter(repo)

	known := postJSON(r, "/auth/forgot-password", `{"email":"known@x.com"}`)
	unknown := postJSON(r, "/auth/forgot-password", `{"email":"unknown@x.com"}`)

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestResendVerification_NoEnumeration(t *testing.T) {
	repo := newMemoryRepo()
	seedMemoryAccount(t, repo, "known@x.com", db_models.StatusPending, false)
	r := newTestRouter(repo)

	known := postJSON(r, "/auth/resend-verification", `{"email":"known@x.com"}`)
	unknown := postJSON(r, "/auth/resend-verification", `{"email":"unknown@x.com"}`)

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestLogin_GatingResponses(t *testing.T) {
	repo := newMemoryRepo()
	seedMemoryAccount(t, repo, "unverified@x.com", db_models.StatusPending, false)
	seedMemoryAccount(t, repo, "pending@x.com", db_models.StatusPending, true)
	seedMemoryAccount(t, repo, "suspended@x.com", db_models.StatusSuspended, true)
	r := newTestRouter(repo)

	w := postJSON(r, "/auth/login", `{"email":"unverified@x.com","password":"Str0ng!Pass"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"requiresVerification":true`)

	w = postJSON(r, "/auth/login", `{"email":"pending@x.com","password":"Str0ng!Pass"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"requiresApproval":true`)

	w = postJSON(r, "/auth/login", `{"email":"suspended@x.com","password":"Str0ng!Pass"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "suspended")

	// Unknown account and wrong password are the same class of failure.
	w = postJSON(r, "/auth/login", `{"email":"nobody@x.com","password":"Str0ng!Pass"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Email or password is incorrect")
}
