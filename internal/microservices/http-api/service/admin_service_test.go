package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogdesk/internal/microservices/http-api/repository"
	"blogdesk/internal/middleware/auth"
	"blogdesk/internal/moderation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStatsRepository mocks the StatsRepository interface
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) AccountStats(ctx context.Context) (repository.AccountStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.AccountStats), args.Error(1)
}

func (m *MockStatsRepository) BlogStatusCounts(ctx context.Context) (map[moderation.Status]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[moderation.Status]int64), args.Error(1)
}

func TestDeactivateAdmin_RequiresSuperAdmin(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	peer := e.store.addProfile(moderation.RoleAdmin, "peer@example.com")

	_, err := e.admin.Deactivate(ctx, e.mod, peer.ID)
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.True(t, e.store.profiles[peer.ID].IsActive)

	got, err := e.admin.Deactivate(ctx, e.super, peer.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.False(t, e.store.profiles[peer.ID].IsActive)

	_, err = e.admin.Activate(ctx, e.mod, peer.ID)
	assert.Equal(t, KindForbidden, KindOf(err))
	got, err = e.admin.Activate(ctx, e.super, peer.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestDeactivateUser_ByAdmin(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	token := "stored"
	e.store.profiles[e.reader.ID].HashedRefreshToken = &token

	got, err := e.admin.Deactivate(ctx, e.mod, e.reader.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Nil(t, e.store.profiles[e.reader.ID].HashedRefreshToken)

	_, err = e.admin.Deactivate(ctx, e.reader, e.author.ID)
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = e.admin.Deactivate(ctx, e.super, e.super.ID)
	assert.Equal(t, KindForbidden, KindOf(err), "no self lock-out")

	_, err = e.admin.Deactivate(ctx, e.mod, "missing")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	require.NoError(t, e.admin.ResetPassword(ctx, e.mod, e.reader.ID, "brand-new"))
	assert.NoError(t, auth.VerifyPassword(e.store.profiles[e.reader.ID].Password, "brand-new"))

	err := e.admin.ResetPassword(ctx, e.mod, e.super.ID, "brand-new")
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	_, err := e.admin.ChangeRole(ctx, e.mod, e.reader.ID, moderation.RoleAdmin)
	assert.Equal(t, KindForbidden, KindOf(err))

	got, err := e.admin.ChangeRole(ctx, e.super, e.reader.ID, moderation.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, moderation.RoleAdmin, got.Role)

	_, err = e.admin.ChangeRole(ctx, e.super, e.reader.ID, moderation.Role("faculty"))
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestListUsersAndAdmins(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	users, err := e.admin.ListUsers(ctx, e.mod)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Equal(t, moderation.RoleUser, u.Role)
	}

	admins, err := e.admin.ListAdmins(ctx, e.mod)
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	_, err = e.admin.ListUsers(ctx, e.reader)
	assert.Equal(t, KindForbidden, KindOf(err))

	got, err := e.admin.GetUser(ctx, e.mod, e.super.ID)
	require.NoError(t, err, "admins may view any account")
	assert.Equal(t, e.super.ID, got.ID)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	assert.Equal(t, KindForbidden, KindOf(e.admin.DeleteUser(ctx, e.mod, e.super.ID)))
	assert.NoError(t, e.admin.DeleteUser(ctx, e.mod, e.reader.ID))
	assert.NotContains(t, e.store.profiles, e.reader.ID)
}

func TestStats_CachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	mod := st.addProfile(moderation.RoleAdmin, "admin@example.com").Actor()
	user := st.addProfile(moderation.RoleUser, "user@example.com")

	stats := new(MockStatsRepository)
	stats.On("AccountStats", mock.Anything).Return(repository.AccountStats{TotalUsers: 1, ActiveUsers: 1, TotalAdmins: 1}, nil)
	stats.On("BlogStatusCounts", mock.Anything).Return(map[moderation.Status]int64{moderation.StatusApproved: 3}, nil)

	svc := NewAdminService(fakeProfiles{st}, stats, newMemCache(), time.Minute, discardLogger())

	first, err := svc.Stats(ctx, mod)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalUsers)
	assert.Equal(t, int64(3), first.BlogsByStatus[moderation.StatusApproved])

	second, err := svc.Stats(ctx, mod)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	stats.AssertNumberOfCalls(t, "AccountStats", 1)

	_, err = svc.Deactivate(ctx, mod, user.ID)
	require.NoError(t, err)
	_, err = svc.Stats(ctx, mod)
	require.NoError(t, err)
	stats.AssertNumberOfCalls(t, "AccountStats", 2)

	_, err = svc.Stats(ctx, moderation.Actor{ID: user.ID, Role: moderation.RoleUser})
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestStats_StoreFailureIsInternal(t *testing.T) {
	stats := new(MockStatsRepository)
	stats.On("AccountStats", mock.Anything).Return(repository.AccountStats{}, errors.New("connection refused"))

	svc := NewAdminService(fakeProfiles{newStore()}, stats, nil, time.Minute, discardLogger())
	_, err := svc.Stats(context.Background(), moderation.Actor{ID: "a", Role: moderation.RoleAdmin})
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "internal server error", PublicMessage(err))
}
