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

type BlogService interface {
	Create(ctx context.Context, actor moderation.Actor, req dto.CreateBlogRequest) (*dto.BlogResponse, error)
	// List returns every blog to admins and approved plus own blogs to everyone else.
	List(ctx context.Context, actor moderation.Actor) ([]dto.BlogResponse, error)
	ListMine(ctx context.Context, actor moderation.Actor) ([]dto.BlogResponse, error)
	ListMyDrafts(ctx context.Context, actor moderation.Actor) ([]dto.BlogResponse, error)
	ListPending(ctx context.Context, actor moderation.Actor) ([]dto.BlogResponse, error)
	// Get counts a view when the blog is approved.
	Get(ctx context.Context, actor moderation.Actor, id int64) (*dto.BlogResponse, error)
	Update(ctx context.Context, actor moderation.Actor, id int64, req dto.UpdateBlogRequest) (*dto.BlogResponse, error)
	SubmitForReview(ctx context.Context, actor moderation.Actor, id int64) (*dto.BlogResponse, error)
	AdminReview(ctx context.Context, actor moderation.Actor, id int64, req dto.AdminReviewRequest) (*dto.BlogResponse, error)
	Delete(ctx context.Context, actor moderation.Actor, id int64) error
}

type blogService struct {
	blogs    repository.BlogRepository
	profiles repository.ProfileRepository
	logger   *slog.Logger
	now      func() time.Time
}

func NewBlogService(blogs repository.BlogRepository, profiles repository.ProfileRepository, logger *slog.Logger) BlogService {
	return &blogService{
		blogs:    blogs,
		profiles: profiles,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *blogService) Create(ctx context.Context, actor moderation.Actor, req dto.CreateBlogRequest) (*dto.BlogResponse, error) {
	author, err := s.profiles.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, storeError(err, "author")
	}

	blog := &models.Blog{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Tags:     models.Tags(req.Tags),
		Status:   moderation.StatusDraft,
		AuthorID: author.ID,
		Version:  1,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, storeError(err, "blog")
	}
	blog.Author = author

	s.logger.InfoContext(ctx, "blog created", "blog_id", blog.ID, "author_id", author.ID)
	return dto.FromModelToBlogResponse(blog), nil
}

func (s *blogService) List(ctx context.Context, actor moderation.Actor) ([]dto.BlogResponse, error) {
	filter := repository.BlogFilter{}
	if moderation.BlogListScope(actor) == moderation.ScopeApprovedOrOwn {
		filter.VisibleTo = actor.ID
	}
	return s.list(ctx, filter)
}

func (s *blogService) ListMine(ctx context.Context, actor moderation.Actor) ([]dto.BlogResponse, error) {
	return s.list(ctx, repository.BlogFilter{AuthorID: actor.ID})
}

func (s *blogService) ListMyDrafts(ctx context.Context, actor moderation.Actor) ([]dto.BlogResponse, error) {
	return s.list(ctx, repository.BlogFilter{AuthorID: actor.ID, Status: moderation.StatusDraft})
}

func (s *blogService) ListPending(ctx context.Context, actor moderation.Actor) ([]dto.BlogResponse, error) {
	if !moderation.CanReview(actor) {
		return nil, Forbidden("only admins can view the review queue")
	}
	return s.list(ctx, repository.BlogFilter{Status: moderation.StatusPending})
}

func (s *blogService) list(ctx context.Context, filter repository.BlogFilter) ([]dto.BlogResponse, error) {
	blogs, err := s.blogs.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "blog")
	}
	return dto.FromModelsToBlogResponses(blogs), nil
}

func (s *blogService) Get(ctx context.Context, actor moderation.Actor, id int64) (*dto.BlogResponse, error) {
	blog, err := s.blogs.FindDetail(ctx, id)
	if err != nil {
		return nil, storeError(err, "blog")
	}
	if !moderation.CanReadBlog(actor, blog.AuthorID, blog.Status) {
		return nil, Forbidden("you do not have access to this blog")
	}

	if moderation.CountsViews(blog.Status) {
		views, err := s.blogs.IncrementViews(ctx, id)
		if err != nil {
			return nil, storeError(err, "blog")
		}
		blog.ViewCount = views
	}
	return dto.FromModelToBlogResponse(blog), nil
}

func (s *blogService) Update(ctx context.Context, actor moderation.Actor, id int64, req dto.UpdateBlogRequest) (*dto.BlogResponse, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "blog")
	}
	if !moderation.CanEditBlog(actor, blog.AuthorID) {
		return nil, Forbidden("you can only edit your own blogs")
	}

	expected := blog.Version
	if req.Version != nil {
		expected = *req.Version
	}

	patch := map[string]any{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Content != nil {
		patch["content"] = *req.Content
	}
	if req.Excerpt != nil {
		patch["excerpt"] = *req.Excerpt
	}
	if req.Tags != nil {
		patch["tags"] = models.Tags(*req.Tags)
	}
	// the reviewer's message stays so the author can still read it after the reset
	if next := moderation.AfterEdit(blog.Status, actor.Role); next != blog.Status {
		patch["status"] = next
	}

	if len(patch) == 0 {
		if expected != blog.Version {
			return nil, storeError(repository.ErrStaleVersion, "blog")
		}
		return dto.FromModelToBlogResponse(blog), nil
	}

	updated, err := s.blogs.Update(ctx, id, expected, patch)
	if err != nil {
		return nil, storeError(err, "blog")
	}
	if updated.Status != blog.Status {
		s.logger.InfoContext(ctx, "blog status changed by edit",
			"blog_id", id, "from", blog.Status, "to", updated.Status, "actor_id", actor.ID)
	}
	return dto.FromModelToBlogResponse(updated), nil
}

func (s *blogService) SubmitForReview(ctx context.Context, actor moderation.Actor, id int64) (*dto.BlogResponse, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "blog")
	}
	if !moderation.CanSubmit(actor, blog.AuthorID) {
		return nil, Forbidden("only the author can submit a blog for review")
	}
	next, err := moderation.Submit(blog.Status)
	if err != nil {
		return nil, storeError(err, "blog")
	}

	updated, err := s.blogs.Update(ctx, id, blog.Version, map[string]any{"status": next})
	if err != nil {
		return nil, storeError(err, "blog")
	}
	s.logger.InfoContext(ctx, "blog submitted for review", "blog_id", id, "author_id", actor.ID)
	return dto.FromModelToBlogResponse(updated), nil
}

func (s *blogService) AdminReview(ctx context.Context, actor moderation.Actor, id int64, req dto.AdminReviewRequest) (*dto.BlogResponse, error) {
	if !moderation.CanReview(actor) {
		return nil, Forbidden("only admins can review blogs")
	}
	decision, err := moderation.ParseDecision(req.Status)
	if err != nil {
		return nil, Validation(err.Error())
	}

	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "blog")
	}
	next, err := moderation.Review(blog.Status, decision)
	if err != nil {
		return nil, storeError(err, "blog")
	}

	patch := map[string]any{"status": next}
	if req.AdminReviewMessage != nil {
		patch["admin_review_message"] = *req.AdminReviewMessage
	}
	if moderation.Publishes(next) && blog.PublishedAt == nil {
		patch["published_at"] = s.now()
	}

	updated, err := s.blogs.Update(ctx, id, blog.Version, patch)
	if err != nil {
		return nil, storeError(err, "blog")
	}
	s.logger.InfoContext(ctx, "blog reviewed", "blog_id", id, "decision", decision, "reviewer_id", actor.ID)
	return dto.FromModelToBlogResponse(updated), nil
}

func (s *blogService) Delete(ctx context.Context, actor moderation.Actor, id int64) error {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return storeError(err, "blog")
	}
	if !moderation.CanDeleteBlog(actor, blog.AuthorID) {
		return Forbidden("you can only delete your own blogs")
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return storeError(err, "blog")
	}
	s.logger.InfoContext(ctx, "blog deleted", "blog_id", id, "actor_id", actor.ID)
	return nil
}
