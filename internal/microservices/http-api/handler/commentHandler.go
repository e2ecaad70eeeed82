package handler

import (
	"net/http"

	"blogdesk/internal/microservices/http-api/dto"
	"blogdesk/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment-related routes
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Comment operations (already authenticated by parent middleware)
	comments := router.Group("/comments")
	{
		comments.POST("", h.Create)
		comments.GET("/blog/:blogId", h.ListByBlog)
		comments.GET("/:id", h.GetByID)
		comments.PATCH("/:id", h.Update)  // author or admin
		comments.DELETE("/:id", h.Delete) // author or admin
	}
}

// Create creates a new comment on an approved blog
// POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update updates an existing comment
// PATCH /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := int64Param(c, "id", "comment")
	if !ok {
		return
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentDTO
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), actor, commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete deletes a comment
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := int64Param(c, "id", "comment")
	if !ok {
		return
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), actor, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// GetByID retrieves a comment by ID
// GET /api/comments/:id
func (h *CommentHandler) GetByID(c *gin.Context) {
	commentID, ok := int64Param(c, "id", "comment")
	if !ok {
		return
	}

	comment, err := h.commentService.GetCommentByID(c.Request.Context(), commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// ListByBlog retrieves all comments for a blog with pagination
// GET /api/comments/blog/:blogId?page=1&page_size=20
func (h *CommentHandler) ListByBlog(c *gin.Context) {
	blogID, ok := int64Param(c, "blogId", "blog")
	if !ok {
		return
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)

	comments, err := h.commentService.GetBlogComments(c.Request.Context(), actor, blogID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
