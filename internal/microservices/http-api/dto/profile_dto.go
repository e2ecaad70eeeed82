package dto

import (
	"time"

	"blogdesk/internal/microservices/http-api/models"
	"blogdesk/internal/moderation"
)

// ProfileResponse is the public view of a profile; credentials never leave the service.
type ProfileResponse struct {
	ID        string          `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Role      moderation.Role `json:"role"`
	IsActive  bool            `json:"is_active"`
	LastLogin *time.Time      `json:"last_login,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AuthorSummary is embedded in blogs and comments
type AuthorSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

func FromModelToProfileResponse(p *models.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Role:      p.Role,
		IsActive:  p.IsActive,
		LastLogin: p.LastLogin,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromModelToAuthorSummary(p *models.Profile) *AuthorSummary {
	if p == nil {
		return nil
	}
	return &AuthorSummary{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}
}
