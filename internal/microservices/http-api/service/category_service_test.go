package service

import (
	"context"
	"testing"
	"time"

	"blogdesk/internal/microservices/http-api/dto"
	"blogdesk/internal/microservices/http-api/repository"
	"blogdesk/internal/moderation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	cache := newMemCache()
	svc := NewCategoryService(fakeCategories{st}, cache, time.Minute, discardLogger())
	admin := moderation.Actor{ID: "a", Role: moderation.RoleAdmin}
	user := moderation.Actor{ID: "u", Role: moderation.RoleUser}

	_, err := svc.Create(ctx, user, dto.CreateCategoryRequest{Name: "Go"})
	assert.Equal(t, KindForbidden, KindOf(err))

	goCat, err := svc.Create(ctx, admin, dto.CreateCategoryRequest{Name: "Go"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, admin, dto.CreateCategoryRequest{Name: "Go"})
	assert.Equal(t, KindConflict, KindOf(err))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Contains(t, cache.values, categoriesCacheKey)

	_, err = svc.Update(ctx, admin, goCat.ID, dto.UpdateCategoryRequest{Name: ptr("Golang")})
	require.NoError(t, err)
	assert.NotContains(t, cache.values, categoriesCacheKey, "writes invalidate the list")

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Golang", list[0].Name)

	require.NoError(t, svc.Delete(ctx, admin, goCat.ID))
	_, err = svc.Get(ctx, goCat.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestStoreErrorMapping(t *testing.T) {
	assert.Nil(t, storeError(nil, "x"))
	assert.Equal(t, KindForbidden, KindOf(storeError(moderation.ErrInvalidTransition, "blog")))
	assert.Equal(t, "blog not found", PublicMessage(storeError(repository.ErrNotFound, "blog")))
}
