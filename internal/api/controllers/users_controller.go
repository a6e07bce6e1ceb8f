package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"astracms/internal/models/request_models"
	"astracms/internal/services"
	"astracms/pkg/middleware"
	"astracms/pkg/utils"
)

type UsersController struct {
	userService services.UserAdminServiceInterface
}

func NewUsersController(userService services.UserAdminServiceInterface) *UsersController {
	return &UsersController{
		userService: userService,
	}
}

// ListUsers godoc
// @Summary List all admin accounts
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users [get]
func (u *UsersController) ListUsers(c *gin.Context) {
	users, err := u.userService.ListUsers(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, users, "")
}

// GetUser godoc
// @Summary Get a single admin account
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (u *UsersController) GetUser(c *gin.Context) {
	user, err := u.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "")
}

// UpdateUser godoc
// @Summary Update an admin account's name, status, role or permissions
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.UpdateUserRequest true "Update payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400,404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (u *UsersController) UpdateUser(c *gin.Context) {
	var req request_models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	callerID := c.GetString(middleware.CtxAccountID)
	user, err := u.userService.UpdateUser(c.Request.Context(), callerID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User updated successfully")
}

// DeleteUser godoc
// @Summary Hard-delete an admin account
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400,404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (u *UsersController) DeleteUser(c *gin.Context) {
	callerID := c.GetString(middleware.CtxAccountID)
	if err := u.userService.DeleteUser(c.Request.Context(), callerID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "User deleted successfully")
}

// ActivateUser godoc
// @Summary Activate a pending or suspended account
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400,404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id}/activate [patch]
func (u *UsersController) ActivateUser(c *gin.Context) {
	callerID := c.GetString(middleware.CtxAccountID)
	user, err := u.userService.ActivateUser(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User activated successfully")
}

// SuspendUser godoc
// @Summary Suspend an account
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400,404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id}/suspend [patch]
func (u *UsersController) SuspendUser(c *gin.Context) {
	callerID := c.GetString(middleware.CtxAccountID)
	user, err := u.userService.SuspendUser(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User suspended successfully")
}
