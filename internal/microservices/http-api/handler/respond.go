package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"blogdesk/internal/microservices/http-api/middleware"
	"blogdesk/internal/microservices/http-api/service"
	"blogdesk/internal/moderation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var kindStatus = map[service.Kind]int{
	service.KindNotFound:        http.StatusNotFound,
	service.KindForbidden:       http.StatusForbidden,
	service.KindConflict:        http.StatusConflict,
	service.KindValidation:      http.StatusBadRequest,
	service.KindUnauthenticated: http.StatusUnauthorized,
	service.KindInternal:        http.StatusInternalServerError,
}

// respondError writes the status and public message for a service error.
// Internal causes are logged, never returned.
func respondError(c *gin.Context, err error) {
	kind := service.KindOf(err)
	if kind == service.KindInternal {
		middleware.LoggerFrom(c).ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(), "error", err)
	}
	_ = c.Error(err)
	c.JSON(kindStatus[kind], gin.H{"error": service.PublicMessage(err)})
}

// bindJSON binds and validates the body, answering 400 with per-field messages on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, fieldMessage(fe))
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": details})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return false
	}
	return true
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

func currentActor(c *gin.Context) (moderation.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return actor, ok
}

func int64Param(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return 0, false
	}
	return id, true
}

func uuidParam(c *gin.Context, name string) (string, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return "", false
	}
	return id.String(), true
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
