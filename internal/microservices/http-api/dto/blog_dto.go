package dto

import (
	"time"

	"blogdesk/internal/microservices/http-api/models"
	"blogdesk/internal/moderation"
)

type CreateBlogRequest struct {
	Title   string   `json:"title" binding:"required,min=1,max=200"`
	Content string   `json:"content" binding:"required,min=1"`
	Excerpt *string  `json:"excerpt" binding:"omitempty,max=500"`
	Tags    []string `json:"tags" binding:"omitempty,max=20,dive,min=1,max=50"`
}

// UpdateBlogRequest is a partial update. Status is deliberately absent:
// it only moves through submit-for-review and admin-review.
// Version, when sent, must match the stored one or the update is refused.
type UpdateBlogRequest struct {
	Title   *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string   `json:"content" binding:"omitempty,min=1"`
	Excerpt *string   `json:"excerpt" binding:"omitempty,max=500"`
	Tags    *[]string `json:"tags" binding:"omitempty,max=20,dive,min=1,max=50"`
	Version *int64    `json:"version" binding:"omitempty,min=1"`
}

type AdminReviewRequest struct {
	Status             string  `json:"status" binding:"required,oneof=approved rejected"`
	AdminReviewMessage *string `json:"admin_review_message" binding:"omitempty,max=2000"`
}

type BlogResponse struct {
	ID                 int64             `json:"id"`
	Title              string            `json:"title"`
	Content            string            `json:"content"`
	Excerpt            *string           `json:"excerpt,omitempty"`
	Status             moderation.Status `json:"status"`
	AdminReviewMessage *string           `json:"admin_review_message,omitempty"`
	Tags               []string          `json:"tags"`
	ViewCount          int64             `json:"view_count"`
	PublishedAt        *time.Time        `json:"published_at,omitempty"`
	AuthorID           string            `json:"author_id"`
	Author             *AuthorSummary    `json:"author,omitempty"`
	Version            int64             `json:"version"`
	Comments           []CommentResponse `json:"comments,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func FromModelToBlogResponse(b *models.Blog) *BlogResponse {
	tags := []string(b.Tags)
	if tags == nil {
		tags = []string{}
	}
	resp := &BlogResponse{
		ID:                 b.ID,
		Title:              b.Title,
		Content:            b.Content,
		Excerpt:            b.Excerpt,
		Status:             b.Status,
		AdminReviewMessage: b.AdminReviewMessage,
		Tags:               tags,
		ViewCount:          b.ViewCount,
		PublishedAt:        b.PublishedAt,
		AuthorID:           b.AuthorID,
		Author:             FromModelToAuthorSummary(b.Author),
		Version:            b.Version,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	for i := range b.Comments {
		resp.Comments = append(resp.Comments, *FromModelToCommentResponse(&b.Comments[i]))
	}
	return resp
}

func FromModelsToBlogResponses(blogs []models.Blog) []BlogResponse {
	out := make([]BlogResponse, 0, len(blogs))
	for i := range blogs {
		out = append(out, *FromModelToBlogResponse(&blogs[i]))
	}
	return out
}
