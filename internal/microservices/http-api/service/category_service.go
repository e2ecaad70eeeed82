package service

import (
	"context"
	"log/slog"
	"time"

	"blogdesk/internal/microservices/http-api/dto"
	"blogdesk/internal/microservices/http-api/models"
	"blogdesk/internal/microservices/http-api/repository"
	"blogdesk/internal/moderation"
)

type CategoryService interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, id int64) (*dto.CategoryResponse, error)
	Create(ctx context.Context, actor moderation.Actor, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, actor moderation.Actor, id int64, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, actor moderation.Actor, id int64) error
}

type categoryService struct {
	repo     repository.CategoryRepository
	cache    Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewCategoryService(repo repository.CategoryRepository, cache Cache, cacheTTL time.Duration, logger *slog.Logger) CategoryService {
	return &categoryService{repo: repo, cache: orNoop(cache), cacheTTL: cacheTTL, logger: logger}
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	var cached []dto.CategoryResponse
	if found, err := s.cache.Get(ctx, categoriesCacheKey, &cached); err != nil {
		s.logger.WarnContext(ctx, "category cache read failed", "error", err)
	} else if found {
		return cached, nil
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(err, "category")
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, *dto.FromModelToCategoryResponse(&list[i]))
	}
	if err := s.cache.Set(ctx, categoriesCacheKey, out, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "category cache write failed", "error", err)
	}
	return out, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "category")
	}
	return dto.FromModelToCategoryResponse(c), nil
}

func (s *categoryService) Create(ctx context.Context, actor moderation.Actor, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if !actor.Role.IsAdmin() {
		return nil, Forbidden("admin role required")
	}
	c := &models.Category{Name: req.Name, Description: req.Description}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, storeError(err, "category")
	}
	s.invalidate(ctx)
	return dto.FromModelToCategoryResponse(c), nil
}

func (s *categoryService) Update(ctx context.Context, actor moderation.Actor, id int64, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if !actor.Role.IsAdmin() {
		return nil, Forbidden("admin role required")
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "category")
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, storeError(err, "category")
	}
	s.invalidate(ctx)
	return dto.FromModelToCategoryResponse(c), nil
}

func (s *categoryService) Delete(ctx context.Context, actor moderation.Actor, id int64) error {
	if !actor.Role.IsAdmin() {
		return Forbidden("admin role required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "category")
	}
	s.invalidate(ctx)
	return nil
}

func (s *categoryService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, categoriesCacheKey); err != nil {
		s.logger.WarnContext(ctx, "category cache invalidation failed", "error", err)
	}
}
