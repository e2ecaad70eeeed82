package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"blogdesk/internal/config"
	"blogdesk/internal/microservices/http-api/dto"
	"blogdesk/internal/microservices/http-api/models"
	"blogdesk/internal/microservices/http-api/repository"
	"blogdesk/internal/middleware/auth"
	"blogdesk/internal/moderation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims is the payload of both token kinds. Refresh tokens carry a unique
// ID whose bcrypt hash is kept on the profile, so only the latest one works.
type Claims struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Role   moderation.Role `json:"role"`
	Type   string          `json:"type"`
	jwt.RegisteredClaims
}

func (c *Claims) Actor() moderation.Actor {
	return moderation.Actor{ID: c.UserID, Role: c.Role}
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.ProfileResponse, error)
	SignIn(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	SignOut(ctx context.Context, userID string) error
	// ValidateToken accepts access tokens only.
	ValidateToken(tokenString string) (*Claims, error)
	// ActiveRole returns the stored role of an active account.
	ActiveRole(ctx context.Context, userID string) (moderation.Role, error)
}

type authService struct {
	profiles        repository.ProfileRepository
	jwtSecret       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	logger          *slog.Logger
	now             func() time.Time
}

func NewAuthService(profiles repository.ProfileRepository, cfg *config.Config, logger *slog.Logger) AuthService {
	return &authService{
		profiles:        profiles,
		jwtSecret:       []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,  // 15 minutes
		refreshTokenTTL: cfg.RefreshTokenTTL, // 7 days
		logger:          logger,
		now:             time.Now,
	}
}

// Register creates a plain user account. Roles above user are granted by a super admin.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.ProfileResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.profiles.FindByEmail(ctx, email); err == nil {
		return nil, Conflict("email already in use")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError(err, "profile")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, Internal(err)
	}

	profile := &models.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Password:  hashedPassword,
		Role:      moderation.RoleUser,
		IsActive:  true,
	}
	// the unique index still catches a concurrent registration with the same email
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("email already in use")
		}
		return nil, storeError(err, "profile")
	}

	s.logger.InfoContext(ctx, "profile registered", "profile_id", profile.ID)
	return dto.FromModelToProfileResponse(profile), nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	profile, err := s.profiles.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			auth.BurnCompare(password)
			return nil, Unauthenticated(ErrInvalidCredentials.Error())
		}
		return nil, storeError(err, "profile")
	}

	if err := auth.VerifyPassword(profile.Password, password); err != nil {
		return nil, Unauthenticated(ErrInvalidCredentials.Error())
	}
	if !profile.IsActive {
		return nil, Forbidden("account is deactivated")
	}

	now := s.now()
	resp, err := s.issueTokens(ctx, profile, map[string]any{"last_login": now})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "signed in", "profile_id", profile.ID)
	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, Unauthenticated("invalid refresh token")
	}

	profile, err := s.profiles.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Unauthenticated("invalid refresh token")
		}
		return nil, storeError(err, "profile")
	}
	if profile.HashedRefreshToken == nil || auth.VerifyPassword(*profile.HashedRefreshToken, claims.ID) != nil {
		return nil, Unauthenticated("invalid refresh token")
	}
	if !profile.IsActive {
		return nil, Forbidden("account is deactivated")
	}

	return s.issueTokens(ctx, profile, nil)
}

// SignOut drops the stored refresh token; outstanding access tokens expire on their own.
func (s *authService) SignOut(ctx context.Context, userID string) error {
	if _, err := s.profiles.Update(ctx, userID, map[string]any{"hashed_refresh_token": nil}); err != nil {
		return storeError(err, "profile")
	}
	return nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return s.parse(tokenString, tokenTypeAccess)
}

func (s *authService) ActiveRole(ctx context.Context, userID string) (moderation.Role, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", Unauthenticated("account no longer exists")
	}
	if err != nil {
		return "", storeError(err, "profile")
	}
	if !p.IsActive {
		return "", Unauthenticated("account is deactivated")
	}
	return p.Role, nil
}

func (s *authService) parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Type != wantType || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// issueTokens signs a fresh pair and stores the hash of the new refresh
// token ID together with any extra profile columns.
func (s *authService) issueTokens(ctx context.Context, profile *models.Profile, extra map[string]any) (*dto.AuthResponse, error) {
	now := s.now()

	accessToken, err := s.sign(profile, tokenTypeAccess, uuid.NewString(), now, s.accessTokenTTL)
	if err != nil {
		return nil, Internal(err)
	}
	refreshID := uuid.NewString()
	refreshToken, err := s.sign(profile, tokenTypeRefresh, refreshID, now, s.refreshTokenTTL)
	if err != nil {
		return nil, Internal(err)
	}
	hashedID, err := auth.HashPassword(refreshID)
	if err != nil {
		return nil, Internal(err)
	}

	patch := map[string]any{"hashed_refresh_token": hashedID}
	for k, v := range extra {
		patch[k] = v
	}
	updated, err := s.profiles.Update(ctx, profile.ID, patch)
	if err != nil {
		return nil, storeError(err, "profile")
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
		Profile:      *dto.FromModelToProfileResponse(updated),
	}, nil
}

func (s *authService) sign(profile *models.Profile, tokenType, id string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: profile.ID,
		Email:  profile.Email,
		Role:   profile.Role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
