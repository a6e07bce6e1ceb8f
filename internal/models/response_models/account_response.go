package response_models

import (
	"astracms/internal/models/db_models"
	"astracms/pkg/utils"
)

// RegisteredUser is the minimal shape returned on registration.
type RegisteredUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AccountResponse is the sanitized account record. Password hashes and
// outstanding codes never leave the service layer.
type AccountResponse struct {
	ID              string                `json:"id"`
	Email           string                `json:"email"`
	Name            string                `json:"name"`
	Role            string                `json:"role"`
	Status          string                `json:"status"`
	Permissions     db_models.Permissions `json:"permissions"`
	IsEmailVerified bool                  `json:"isEmailVerified"`
	LastLogin       string                `json:"lastLogin,omitempty"`
	CreatedAt       string                `json:"createdAt"`
	UpdatedAt       string                `json:"updatedAt"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// SessionUser is the identity payload attached to a successful login or a
// token verification.
type SessionUser struct {
	ID          string                `json:"id"`
	Email       string                `json:"email"`
	Name        string                `json:"name"`
	Role        string                `json:"role"`
	Permissions db_models.Permissions `json:"permissions"`
}

type AccountStatusResponse struct {
	Status          string `json:"status"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

func ToRegisteredUser(a *db_models.Account) RegisteredUser {
	return RegisteredUser{
		ID:    a.ID.String(),
		Email: a.Email,
		Name:  a.Name,
	}
}

func ToSessionUser(a *db_models.Account) SessionUser {
	return SessionUser{
		ID:          a.ID.String(),
		Email:       a.Email,
		Name:        a.Name,
		Role:        a.Role,
		Permissions: a.Permissions,
	}
}

func ToAccountResponse(a *db_models.Account) AccountResponse {
	resp := AccountResponse{
		ID:              a.ID.String(),
		Email:           a.Email,
		Name:            a.Name,
		Role:            a.Role,
		Status:          a.Status,
		Permissions:     a.Permissions,
		IsEmailVerified: a.IsEmailVerified,
		CreatedAt:       utils.FormatRFC3339(utils.FromUnixSeconds(a.CreatedAt)),
		UpdatedAt:       utils.FormatRFC3339(utils.FromUnixSeconds(a.UpdatedAt)),
	}
	if a.LastLogin != nil {
		resp.LastLogin = utils.FormatRFC3339(*a.LastLogin)
	}
	return resp
}
