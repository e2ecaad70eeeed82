package service

import (
	"context"
	"log/slog"
	"time"

	"blogdesk/internal/microservices/http-api/dto"
	"blogdesk/internal/microservices/http-api/models"
	"blogdesk/internal/microservices/http-api/repository"
	"blogdesk/internal/middleware/auth"
	"blogdesk/internal/moderation"
)

// AdminService is the account management surface. Every method re-checks
// the actor; the route guards are not the only line.
type AdminService interface {
	ListUsers(ctx context.Context, actor moderation.Actor) ([]dto.ProfileResponse, error)
	ListAdmins(ctx context.Context, actor moderation.Actor) ([]dto.ProfileResponse, error)
	GetUser(ctx context.Context, actor moderation.Actor, id string) (*dto.ProfileResponse, error)
	Activate(ctx context.Context, actor moderation.Actor, id string) (*dto.ProfileResponse, error)
	Deactivate(ctx context.Context, actor moderation.Actor, id string) (*dto.ProfileResponse, error)
	ResetPassword(ctx context.Context, actor moderation.Actor, id, newPassword string) error
	ChangeRole(ctx context.Context, actor moderation.Actor, id string, role moderation.Role) (*dto.ProfileResponse, error)
	DeleteUser(ctx context.Context, actor moderation.Actor, id string) error
	Stats(ctx context.Context, actor moderation.Actor) (*dto.StatsResponse, error)
}

type adminService struct {
	profiles repository.ProfileRepository
	stats    repository.StatsRepository
	cache    Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewAdminService(
	profiles repository.ProfileRepository,
	stats repository.StatsRepository,
	cache Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) AdminService {
	return &adminService{
		profiles: profiles,
		stats:    stats,
		cache:    orNoop(cache),
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (s *adminService) ListUsers(ctx context.Context, actor moderation.Actor) ([]dto.ProfileResponse, error) {
	role := moderation.RoleUser
	return s.list(ctx, actor, repository.ProfileFilter{Role: &role})
}

// ListAdmins returns admins and super admins.
func (s *adminService) ListAdmins(ctx context.Context, actor moderation.Actor) ([]dto.ProfileResponse, error) {
	out := []dto.ProfileResponse{}
	for _, role := range []moderation.Role{moderation.RoleAdmin, moderation.RoleSuperAdmin} {
		r := role
		list, err := s.list(ctx, actor, repository.ProfileFilter{Role: &r})
		if err != nil {
			return nil, err
		}
		out = append(out, list...)
	}
	return out, nil
}

func (s *adminService) list(ctx context.Context, actor moderation.Actor, filter repository.ProfileFilter) ([]dto.ProfileResponse, error) {
	if !actor.Role.IsAdmin() {
		return nil, Forbidden("admin role required")
	}
	profiles, err := s.profiles.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "profile")
	}
	out := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, *dto.FromModelToProfileResponse(&profiles[i]))
	}
	return out, nil
}

func (s *adminService) GetUser(ctx context.Context, actor moderation.Actor, id string) (*dto.ProfileResponse, error) {
	target, err := s.authorize(ctx, actor, moderation.ActionView, id)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToProfileResponse(target), nil
}

func (s *adminService) Activate(ctx context.Context, actor moderation.Actor, id string) (*dto.ProfileResponse, error) {
	return s.setActive(ctx, actor, id, true)
}

// Deactivate also drops the refresh token so the account cannot mint new access tokens.
func (s *adminService) Deactivate(ctx context.Context, actor moderation.Actor, id string) (*dto.ProfileResponse, error) {
	return s.setActive(ctx, actor, id, false)
}

func (s *adminService) setActive(ctx context.Context, actor moderation.Actor, id string, active bool) (*dto.ProfileResponse, error) {
	action := moderation.ActionActivate
	patch := map[string]any{"is_active": true}
	if !active {
		action = moderation.ActionDeactivate
		patch = map[string]any{"is_active": false, "hashed_refresh_token": nil}
	}

	if _, err := s.authorize(ctx, actor, action, id); err != nil {
		return nil, err
	}
	updated, err := s.profiles.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, "profile")
	}
	s.invalidateStats(ctx)
	s.logger.InfoContext(ctx, "account "+string(action), "profile_id", id, "actor_id", actor.ID)
	return dto.FromModelToProfileResponse(updated), nil
}

func (s *adminService) ResetPassword(ctx context.Context, actor moderation.Actor, id, newPassword string) error {
	if _, err := s.authorize(ctx, actor, moderation.ActionResetPassword, id); err != nil {
		return err
	}
	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return Internal(err)
	}
	if _, err := s.profiles.Update(ctx, id, map[string]any{
		"password_hash":        hashed,
		"hashed_refresh_token": nil,
	}); err != nil {
		return storeError(err, "profile")
	}
	s.logger.InfoContext(ctx, "password reset", "profile_id", id, "actor_id", actor.ID)
	return nil
}

func (s *adminService) ChangeRole(ctx context.Context, actor moderation.Actor, id string, role moderation.Role) (*dto.ProfileResponse, error) {
	if !role.IsValid() {
		return nil, Validation("unknown role")
	}
	if err := moderation.CanAssignRole(actor, id); err != nil {
		return nil, storeError(err, "profile")
	}
	// revoke the refresh token so the next token pair carries the new role
	updated, err := s.profiles.Update(ctx, id, map[string]any{
		"role":                 role,
		"hashed_refresh_token": nil,
	})
	if err != nil {
		return nil, storeError(err, "profile")
	}
	s.invalidateStats(ctx)
	s.logger.InfoContext(ctx, "role changed", "profile_id", id, "role", role, "actor_id", actor.ID)
	return dto.FromModelToProfileResponse(updated), nil
}

func (s *adminService) DeleteUser(ctx context.Context, actor moderation.Actor, id string) error {
	if _, err := s.authorize(ctx, actor, moderation.ActionDelete, id); err != nil {
		return err
	}
	if err := s.profiles.Delete(ctx, id); err != nil {
		return storeError(err, "profile")
	}
	s.invalidateStats(ctx)
	s.logger.InfoContext(ctx, "account deleted", "profile_id", id, "actor_id", actor.ID)
	return nil
}

func (s *adminService) Stats(ctx context.Context, actor moderation.Actor) (*dto.StatsResponse, error) {
	if !actor.Role.IsAdmin() {
		return nil, Forbidden("admin role required")
	}

	var cached dto.StatsResponse
	if found, err := s.cache.Get(ctx, statsCacheKey, &cached); err != nil {
		s.logger.WarnContext(ctx, "stats cache read failed", "error", err)
	} else if found {
		return &cached, nil
	}

	accounts, err := s.stats.AccountStats(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	blogs, err := s.stats.BlogStatusCounts(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	resp := &dto.StatsResponse{
		TotalUsers:    accounts.TotalUsers,
		ActiveUsers:   accounts.ActiveUsers,
		InactiveUsers: accounts.InactiveUsers,
		TotalAdmins:   accounts.TotalAdmins,
		BlogsByStatus: blogs,
	}
	if err := s.cache.Set(ctx, statsCacheKey, resp, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "stats cache write failed", "error", err)
	}
	return resp, nil
}

// authorize loads the target and applies the account policy to it.
func (s *adminService) authorize(ctx context.Context, actor moderation.Actor, action moderation.AccountAction, id string) (*models.Profile, error) {
	if !actor.Role.IsAdmin() {
		return nil, Forbidden("admin role required")
	}
	target, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "user")
	}
	if err := moderation.CanManageAccount(actor, action, target.ID, target.Role); err != nil {
		return nil, storeError(err, "user")
	}
	return target, nil
}

func (s *adminService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.logger.WarnContext(ctx, "stats cache invalidation failed", "error", err)
	}
}
