package service

import (
	"context"
	"log/slog"

	"blogdesk/internal/microservices/http-api/dto"
	"blogdesk/internal/microservices/http-api/models"
	"blogdesk/internal/microservices/http-api/repository"
	"blogdesk/internal/moderation"
)

type CommentService interface {
	CreateComment(ctx context.Context, actor moderation.Actor, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, actor moderation.Actor, commentID int64, content string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, actor moderation.Actor, commentID int64) error
	GetCommentByID(ctx context.Context, commentID int64) (*dto.CommentResponse, error)
	GetBlogComments(ctx context.Context, actor moderation.Actor, blogID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	blogRepo    repository.BlogRepository
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	blogRepo repository.BlogRepository,
	profileRepo repository.ProfileRepository,
	logger *slog.Logger,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// CreateComment attaches a comment to an approved blog
func (s *commentService) CreateComment(ctx context.Context, actor moderation.Actor, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	blog, err := s.blogRepo.FindByID(ctx, req.BlogID)
	if err != nil {
		return nil, storeError(err, "blog")
	}
	if !moderation.CanComment(blog.Status) {
		return nil, Forbidden("comments are only allowed on approved blogs")
	}

	author, err := s.profileRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, storeError(err, "author")
	}

	comment := &models.Comment{
		BlogID:   blog.ID,
		AuthorID: author.ID,
		Content:  req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, storeError(err, "comment")
	}
	comment.Author = author

	return dto.FromModelToCommentResponse(comment), nil
}

// UpdateComment rewrites the content; author or admin only
func (s *commentService) UpdateComment(ctx context.Context, actor moderation.Actor, commentID int64, content string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, storeError(err, "comment")
	}

	if !moderation.CanModifyComment(actor, comment.AuthorID) {
		return nil, Forbidden("you don't have permission to update this comment")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, storeError(err, "comment")
	}

	// Reload for the fresh timestamps
	comment, err = s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, storeError(err, "comment")
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// DeleteComment removes a comment; author or admin only
func (s *commentService) DeleteComment(ctx context.Context, actor moderation.Actor, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return storeError(err, "comment")
	}
	if !moderation.CanModifyComment(actor, comment.AuthorID) {
		return Forbidden("you don't have permission to delete this comment")
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return storeError(err, "comment")
	}
	if !actor.Owns(comment.AuthorID) {
		s.logger.InfoContext(ctx, "comment removed by moderator", "comment_id", commentID, "actor_id", actor.ID)
	}
	return nil
}

// GetCommentByID retrieves a comment by ID
func (s *commentService) GetCommentByID(ctx context.Context, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, storeError(err, "comment")
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// GetBlogComments retrieves the comments of a blog with pagination
func (s *commentService) GetBlogComments(ctx context.Context, actor moderation.Actor, blogID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	blog, err := s.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		return nil, storeError(err, "blog")
	}
	if !moderation.CanReadBlog(actor, blog.AuthorID, blog.Status) {
		return nil, Forbidden("you do not have access to this blog")
	}

	comments, total, err := s.commentRepo.GetByBlog(ctx, blogID, page, pageSize)
	if err != nil {
		return nil, storeError(err, "comment")
	}

	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentResponses = append(commentResponses, *dto.FromModelToCommentResponse(&comment))
	}

	return dto.NewPaginatedCommentResponse(commentResponses, int(total), page, pageSize), nil
}
