package handler

import (
	"context"
	"net/http"

	"blogdesk/internal/microservices/http-api/dto"
	"blogdesk/internal/microservices/http-api/middleware"
	"blogdesk/internal/microservices/http-api/service"
	"blogdesk/internal/moderation"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// RegisterRoutes mounts /admin. Everything needs admin; touching admin
// accounts or roles needs super_admin.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.GET("/admins", h.ListAdmins)
		admin.GET("/users/:id", h.GetUser)
		admin.PATCH("/users/:id/activate", h.Activate)
		admin.PATCH("/users/:id/deactivate", h.Deactivate)
		admin.PATCH("/users/:id/reset-password", h.ResetPassword)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.GET("/stats", h.Stats)
	}

	super := admin.Group("", middleware.RequireSuperAdmin())
	{
		super.PATCH("/admins/:id/activate", h.Activate)
		super.PATCH("/admins/:id/deactivate", h.Deactivate)
		super.PATCH("/users/:id/role", h.ChangeRole)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	h.list(c, h.adminService.ListUsers)
}

func (h *AdminHandler) ListAdmins(c *gin.Context) {
	h.list(c, h.adminService.ListAdmins)
}

func (h *AdminHandler) list(c *gin.Context, fetch func(context.Context, moderation.Actor) ([]dto.ProfileResponse, error)) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	profiles, err := fetch(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	h.profileAction(c, h.adminService.GetUser)
}

func (h *AdminHandler) Activate(c *gin.Context) {
	h.profileAction(c, h.adminService.Activate)
}

func (h *AdminHandler) Deactivate(c *gin.Context) {
	h.profileAction(c, h.adminService.Deactivate)
}

func (h *AdminHandler) profileAction(c *gin.Context, run func(context.Context, moderation.Actor, string) (*dto.ProfileResponse, error)) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	profile, err := run(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AdminHandler) ResetPassword(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.adminService.ResetPassword(c.Request.Context(), actor, id, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := moderation.ParseRole(req.Role)
	if err != nil {
		respondError(c, service.Validation(err.Error()))
		return
	}
	profile, err := h.adminService.ChangeRole(c.Request.Context(), actor, id, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.adminService.DeleteUser(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	stats, err := h.adminService.Stats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
