package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"astracms/internal/models/request_models"
	"astracms/internal/services"
	"astracms/pkg/middleware"
	"astracms/pkg/utils"
)

// Generic responses for flows that must not reveal whether an email is
// registered. Both branches answer with these exact bytes.
const (
	genericVerificationMsg = "If the email exists, a verification code has been sent"
	genericResetMsg        = "If the email exists, a password reset link has been sent"
)

type AuthController struct {
	authService services.AuthServiceInterface
}

func NewAuthController(authService services.AuthServiceInterface) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register godoc
// @Summary Register a new admin account
// @Description Self-registration; the account starts pending and unverified
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400,409 {object} utils.APIResponse
// @Router /auth/register [post]
func (a *AuthController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.authService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c,
		gin.H{"email": user.Email, "user": user},
		"Registration successful! Check your email for the verification code.")
}

// Login godoc
// @Summary Login with email and password
// @Description Issues a 24h bearer token for a verified, active account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401,403 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := a.authService.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrEmailNotVerified):
			utils.RespondErrorData(c, http.StatusForbidden,
				"Please verify your email before logging in",
				gin.H{"requiresVerification": true})
		case errors.Is(err, utils.ErrPendingApproval):
			utils.RespondErrorData(c, http.StatusForbidden,
				"Your account is pending admin approval. Please wait for activation.",
				gin.H{"requiresApproval": true})
		case errors.Is(err, utils.ErrAccountSuspended):
			utils.RespondError(c, http.StatusForbidden,
				"Your account has been suspended. Please contact the administrator.")
		default:
			utils.HandleServiceError(c, err)
		}
		return
	}

	utils.RespondSuccess(c, result, "Login successful")
}

// Logout is advisory: tokens are stateless and simply expire.
func (a *AuthController) Logout(c *gin.Context) {
	utils.RespondSuccess(c, nil, "Logged out successfully")
}

// Verify godoc
// @Summary Verify the bearer token
// @Description Returns the caller's identity with fresh permissions
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /auth/verify [get]
func (a *AuthController) Verify(c *gin.Context) {
	accountID := c.GetString(middleware.CtxAccountID)

	user, err := a.authService.CurrentUser(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, utils.ErrAccountNotFound) {
			utils.RespondError(c, http.StatusUnauthorized, "User not found")
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"user": user}, "")
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ChangePasswordRequest true "Password change payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400,401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /auth/change-password [post]
func (a *AuthController) ChangePassword(c *gin.Context) {
	var req request_models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID := c.GetString(middleware.CtxAccountID)
	if err := a.authService.ChangePassword(c.Request.Context(), accountID, req.CurrentPassword, req.NewPassword); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password changed successfully")
}

// VerifyEmail godoc
// @Summary Verify an email address with the 6-digit code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.VerifyEmailRequest true "Verification payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400,404 {object} utils.APIResponse
// @Router /auth/verify-email [post]
func (a *AuthController) VerifyEmail(c *gin.Context) {
	var req request_models.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.authService.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Email verified successfully")
}

// ResendVerification godoc
// @Summary Resend the verification code
// @Description Responds with the same generic message whether or not the email exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ResendVerificationRequest true "Resend payload"
// @Success 200 {object} utils.APIResponse
// @Router /auth/resend-verification [post]
func (a *AuthController) ResendVerification(c *gin.Context) {
	var req request_models.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.authService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, genericVerificationMsg)
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Description Responds with the same generic message whether or not the email exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ForgotPasswordRequest true "Forgot password payload"
// @Success 200 {object} utils.APIResponse
// @Router /auth/forgot-password [post]
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var req request_models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, genericResetMsg)
}

// ResetPassword godoc
// @Summary Reset the password with a mailed token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ResetPasswordRequest true "Reset payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/reset-password [post]
func (a *AuthController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password reset successfully. You can now log in with your new password.")
}

// CheckStatus godoc
// @Summary Check account status while waiting for activation
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.CheckStatusRequest true "Status payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /auth/check-status [post]
func (a *AuthController) CheckStatus(c *gin.Context) {
	var req request_models.CheckStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	status, err := a.authService.CheckStatus(c.Request.Context(), req.Email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "")
}
