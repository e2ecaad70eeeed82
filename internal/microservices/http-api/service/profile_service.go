package service

import (
	"context"
	"errors"
	"strings"

	"blogdesk/internal/microservices/http-api/dto"
	"blogdesk/internal/microservices/http-api/repository"
	"blogdesk/internal/middleware/auth"
)

type ProfileService interface {
	Me(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateMe(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
}

type profileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Me(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "profile")
	}
	return dto.FromModelToProfileResponse(p), nil
}

func (s *profileService) UpdateMe(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	patch := map[string]any{}
	if req.FirstName != nil {
		patch["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		patch["last_name"] = *req.LastName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		existing, err := s.profiles.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != userID:
			return nil, Conflict("email already in use")
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return nil, storeError(err, "profile")
		}
		patch["email"] = email
	}
	if len(patch) == 0 {
		return s.Me(ctx, userID)
	}

	updated, err := s.profiles.Update(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("email already in use")
		}
		return nil, storeError(err, "profile")
	}
	return dto.FromModelToProfileResponse(updated), nil
}

// ChangePassword also revokes the refresh token so other sessions have to sign in again.
func (s *profileService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return storeError(err, "profile")
	}
	if err := auth.VerifyPassword(p.Password, req.OldPassword); err != nil {
		return Validation("current password is incorrect")
	}
	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return Internal(err)
	}
	_, err = s.profiles.Update(ctx, userID, map[string]any{
		"password_hash":        hashed,
		"hashed_refresh_token": nil,
	})
	return storeError(err, "profile")
}
