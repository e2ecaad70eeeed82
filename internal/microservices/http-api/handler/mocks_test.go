package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"blogdesk/internal/microservices/http-api/dto"
	"blogdesk/internal/microservices/http-api/service"
	"blogdesk/internal/moderation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

const (
	userID    = "7f1c2a4e-0000-4000-8000-000000000001"
	adminID   = "7f1c2a4e-0000-4000-8000-000000000002"
	superID   = "7f1c2a4e-0000-4000-8000-000000000003"
	otherID   = "7f1c2a4e-0000-4000-8000-000000000004"
	staleID   = "7f1c2a4e-0000-4000-8000-000000000005"
	demotedID = "7f1c2a4e-0000-4000-8000-000000000006"
)

var (
	userActor  = moderation.Actor{ID: userID, Role: moderation.RoleUser}
	adminActor = moderation.Actor{ID: adminID, Role: moderation.RoleAdmin}
	superActor = moderation.Actor{ID: superID, Role: moderation.RoleSuperAdmin}
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.ProfileResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileResponse), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// ValidateToken is not mocked: tokens in tests are "token-<role>".
func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	switch tokenString {
	case "token-user":
		return &service.Claims{UserID: userID, Role: moderation.RoleUser}, nil
	case "token-admin":
		return &service.Claims{UserID: adminID, Role: moderation.RoleAdmin}, nil
	case "token-super":
		return &service.Claims{UserID: superID, Role: moderation.RoleSuperAdmin}, nil
	case "token-stale-admin":
		return &service.Claims{UserID: staleID, Role: moderation.RoleAdmin}, nil
	case "token-demoted":
		return &service.Claims{UserID: demotedID, Role: moderation.RoleAdmin}, nil
	}
	return nil, service.ErrInvalidToken
}

// ActiveRole reports the stored role: staleID is deactivated, demotedID lost admin.
func (m *MockAuthService) ActiveRole(_ context.Context, id string) (moderation.Role, error) {
	switch id {
	case adminID:
		return moderation.RoleAdmin, nil
	case superID:
		return moderation.RoleSuperAdmin, nil
	case demotedID:
		return moderation.RoleUser, nil
	}
	return "", service.Unauthenticated("account is deactivated")
}

// MockBlogService mocks the BlogService interface
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) blog(args mock.Arguments) (*dto.BlogResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BlogResponse), args.Error(1)
}

func (m *MockBlogService) blogs(args mock.Arguments) ([]dto.BlogResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.BlogResponse), args.Error(1)
}

func (m *MockBlogService) Create(ctx context.Context, a moderation.Actor, req dto.CreateBlogRequest) (*dto.BlogResponse, error) {
	return m.blog(m.Called(ctx, a, req))
}

func (m *MockBlogService) List(ctx context.Context, a moderation.Actor) ([]dto.BlogResponse, error) {
	return m.blogs(m.Called(ctx, a))
}

func (m *MockBlogService) ListMine(ctx context.Context, a moderation.Actor) ([]dto.BlogResponse, error) {
	return m.blogs(m.Called(ctx, a))
}

func (m *MockBlogService) ListMyDrafts(ctx context.Context, a moderation.Actor) ([]dto.BlogResponse, error) {
	return m.blogs(m.Called(ctx, a))
}

func (m *MockBlogService) ListPending(ctx context.Context, a moderation.Actor) ([]dto.BlogResponse, error) {
	return m.blogs(m.Called(ctx, a))
}

func (m *MockBlogService) Get(ctx context.Context, a moderation.Actor, id int64) (*dto.BlogResponse, error) {
	return m.blog(m.Called(ctx, a, id))
}

func (m *MockBlogService) Update(ctx context.Context, a moderation.Actor, id int64, req dto.UpdateBlogRequest) (*dto.BlogResponse, error) {
	return m.blog(m.Called(ctx, a, id, req))
}

func (m *MockBlogService) SubmitForReview(ctx context.Context, a moderation.Actor, id int64) (*dto.BlogResponse, error) {
	return m.blog(m.Called(ctx, a, id))
}

func (m *MockBlogService) AdminReview(ctx context.Context, a moderation.Actor, id int64, req dto.AdminReviewRequest) (*dto.BlogResponse, error) {
	return m.blog(m.Called(ctx, a, id, req))
}

func (m *MockBlogService) Delete(ctx context.Context, a moderation.Actor, id int64) error {
	return m.Called(ctx, a, id).Error(0)
}

// MockCommentService mocks the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) comment(args mock.Arguments) (*dto.CommentResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) CreateComment(ctx context.Context, a moderation.Actor, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	return m.comment(m.Called(ctx, a, req))
}

func (m *MockCommentService) UpdateComment(ctx context.Context, a moderation.Actor, id int64, content string) (*dto.CommentResponse, error) {
	return m.comment(m.Called(ctx, a, id, content))
}

func (m *MockCommentService) DeleteComment(ctx context.Context, a moderation.Actor, id int64) error {
	return m.Called(ctx, a, id).Error(0)
}

func (m *MockCommentService) GetCommentByID(ctx context.Context, id int64) (*dto.CommentResponse, error) {
	return m.comment(m.Called(ctx, id))
}

func (m *MockCommentService) GetBlogComments(ctx context.Context, a moderation.Actor, blogID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	args := m.Called(ctx, a, blogID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedCommentResponse), args.Error(1)
}

// MockAdminService mocks the AdminService interface
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) profiles(args mock.Arguments) ([]dto.ProfileResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ProfileResponse), args.Error(1)
}

func (m *MockAdminService) profile(args mock.Arguments) (*dto.ProfileResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileResponse), args.Error(1)
}

func (m *MockAdminService) ListUsers(ctx context.Context, a moderation.Actor) ([]dto.ProfileResponse, error) {
	return m.profiles(m.Called(ctx, a))
}

func (m *MockAdminService) ListAdmins(ctx context.Context, a moderation.Actor) ([]dto.ProfileResponse, error) {
	return m.profiles(m.Called(ctx, a))
}

func (m *MockAdminService) GetUser(ctx context.Context, a moderation.Actor, id string) (*dto.ProfileResponse, error) {
	return m.profile(m.Called(ctx, a, id))
}

func (m *MockAdminService) Activate(ctx context.Context, a moderation.Actor, id string) (*dto.ProfileResponse, error) {
	return m.profile(m.Called(ctx, a, id))
}

func (m *MockAdminService) Deactivate(ctx context.Context, a moderation.Actor, id string) (*dto.ProfileResponse, error) {
	return m.profile(m.Called(ctx, a, id))
}

func (m *MockAdminService) ResetPassword(ctx context.Context, a moderation.Actor, id, pw string) error {
	return m.Called(ctx, a, id, pw).Error(0)
}

func (m *MockAdminService) ChangeRole(ctx context.Context, a moderation.Actor, id string, role moderation.Role) (*dto.ProfileResponse, error) {
	return m.profile(m.Called(ctx, a, id, role))
}

func (m *MockAdminService) DeleteUser(ctx context.Context, a moderation.Actor, id string) error {
	return m.Called(ctx, a, id).Error(0)
}

func (m *MockAdminService) Stats(ctx context.Context, a moderation.Actor) (*dto.StatsResponse, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatsResponse), args.Error(1)
}

type mocks struct {
	auth     *MockAuthService
	blogs    *MockBlogService
	comments *MockCommentService
	admin    *MockAdminService
}

func setupRouter() (*gin.Engine, *mocks) {
	return setupRouterWith(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupRouterWith(logger *slog.Logger) (*gin.Engine, *mocks) {
	gin.SetMode(gin.TestMode)
	m := &mocks{
		auth:     new(MockAuthService),
		blogs:    new(MockBlogService),
		comments: new(MockCommentService),
		admin:    new(MockAdminService),
	}
	r := NewRouter(Services{
		Auth:     m.auth,
		Blogs:    m.blogs,
		Comments: m.comments,
		Admin:    m.admin,
	}, RouterOptions{Logger: logger})
	return r, m
}

func request(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewBuffer(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
