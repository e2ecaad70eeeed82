package dto

import "blogdesk/internal/moderation"

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin super_admin"`
}

// StatsResponse: dashboard counters
type StatsResponse struct {
	TotalUsers    int64                       `json:"total_users"`
	ActiveUsers   int64                       `json:"active_users"`
	InactiveUsers int64                       `json:"inactive_users"`
	TotalAdmins   int64                       `json:"total_admins"`
	BlogsByStatus map[moderation.Status]int64 `json:"blogs_by_status"`
}
