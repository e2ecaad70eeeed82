package handler

import (
	"net/http"

	"blogdesk/internal/microservices/http-api/dto"
	"blogdesk/internal/microservices/http-api/middleware"
	"blogdesk/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogService service.BlogService
}

func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// RegisterRoutes registers blog routes on an authenticated group
func (h *BlogHandler) RegisterRoutes(router *gin.RouterGroup) {
	blogs := router.Group("/blogs")
	{
		blogs.POST("", h.Create)
		blogs.GET("", h.List)
		blogs.GET("/my-blogs", h.ListMine)
		blogs.GET("/my-drafts", h.ListMyDrafts)
		blogs.GET("/pending", middleware.RequireAdmin(), h.ListPending)
		blogs.GET("/:id", h.Get)
		blogs.PATCH("/:id", h.Update)
		blogs.PATCH("/:id/submit-for-review", h.SubmitForReview)
		blogs.PATCH("/:id/admin-review", middleware.RequireAdmin(), h.AdminReview)
		blogs.DELETE("/:id", h.Delete)
	}
}

// Create starts a new draft owned by the caller
// POST /api/blogs
func (h *BlogHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreateBlogRequest
	if !bindJSON(c, &req) {
		return
	}

	blog, err := h.blogService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blog)
}

// List returns the blogs visible to the caller
// GET /api/blogs
func (h *BlogHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	blogs, err := h.blogService.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// GET /api/blogs/my-blogs
func (h *BlogHandler) ListMine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	blogs, err := h.blogService.ListMine(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// GET /api/blogs/my-drafts
func (h *BlogHandler) ListMyDrafts(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	blogs, err := h.blogService.ListMyDrafts(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// GET /api/blogs/pending
func (h *BlogHandler) ListPending(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	blogs, err := h.blogService.ListPending(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// Get returns one blog with its comments; approved blogs count the view
// GET /api/blogs/:id
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id", "blog")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	blog, err := h.blogService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// PATCH /api/blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id", "blog")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.UpdateBlogRequest
	if !bindJSON(c, &req) {
		return
	}
	blog, err := h.blogService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// PATCH /api/blogs/:id/submit-for-review
func (h *BlogHandler) SubmitForReview(c *gin.Context) {
	id, ok := int64Param(c, "id", "blog")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	blog, err := h.blogService.SubmitForReview(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// PATCH /api/blogs/:id/admin-review
func (h *BlogHandler) AdminReview(c *gin.Context) {
	id, ok := int64Param(c, "id", "blog")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.AdminReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	blog, err := h.blogService.AdminReview(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// DELETE /api/blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := int64Param(c, "id", "blog")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.blogService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully"})
}
