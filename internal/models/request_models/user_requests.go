package request_models

import "astracms/internal/models/db_models"

// UpdateUserRequest carries optional admin edits. A nil field is left
// untouched; setting Role to super_admin forces every permission flag true.
type UpdateUserRequest struct {
	Name        *string                `json:"name" binding:"omitempty,min=1,max=100"`
	Status      *string                `json:"status" binding:"omitempty,oneof=pending active suspended"`
	Role        *string                `json:"role" binding:"omitempty,oneof=admin super_admin"`
	Permissions *db_models.Permissions `json:"permissions"`
}
