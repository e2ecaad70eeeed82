// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Create a user account", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation"}, "409": {"description": "Email in use"}}}},
        "/auth/signin": {"post": {"tags": ["auth"], "summary": "Exchange credentials for tokens", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}, "403": {"description": "Account deactivated"}}}},
        "/auth/refresh": {"post": {"tags": ["auth"], "summary": "Rotate the refresh token", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid token"}}}},
        "/auth/signout": {"post": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Revoke the refresh token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}}}},
        "/profile/me": {
            "get": {"tags": ["profile"], "security": [{"BearerAuth": []}], "summary": "Current profile", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["profile"], "security": [{"BearerAuth": []}], "summary": "Update own names or email", "responses": {"200": {"description": "OK"}, "400": {"description": "Validation"}, "409": {"description": "Email in use"}}}
        },
        "/profile/me/password": {"patch": {"tags": ["profile"], "security": [{"BearerAuth": []}], "summary": "Change own password", "responses": {"200": {"description": "OK"}, "400": {"description": "Validation or wrong current password"}}}},
        "/blogs": {
            "get": {"tags": ["blogs"], "security": [{"BearerAuth": []}], "summary": "Blogs visible to the caller", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["blogs"], "security": [{"BearerAuth": []}], "summary": "Create a draft", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation"}}}
        },
        "/blogs/my-blogs": {"get": {"tags": ["blogs"], "security": [{"BearerAuth": []}], "summary": "Own blogs", "responses": {"200": {"description": "OK"}}}},
        "/blogs/my-drafts": {"get": {"tags": ["blogs"], "security": [{"BearerAuth": []}], "summary": "Own drafts", "responses": {"200": {"description": "OK"}}}},
        "/blogs/pending": {"get": {"tags": ["moderation"], "security": [{"BearerAuth": []}], "summary": "Review queue (admin)", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/blogs/{id}": {
            "get": {"tags": ["blogs"], "security": [{"BearerAuth": []}], "summary": "Blog with comments", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["blogs"], "security": [{"BearerAuth": []}], "summary": "Edit a blog", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Stale version"}}},
            "delete": {"tags": ["blogs"], "security": [{"BearerAuth": []}], "summary": "Delete a blog", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}}
        },
        "/blogs/{id}/submit-for-review": {"patch": {"tags": ["moderation"], "security": [{"BearerAuth": []}], "summary": "Move a draft to pending", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Not a draft or not the author"}}}},
        "/blogs/{id}/admin-review": {"patch": {"tags": ["moderation"], "security": [{"BearerAuth": []}], "summary": "Approve or reject a pending blog", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Concurrent review"}}}},
        "/comments": {"post": {"tags": ["comments"], "security": [{"BearerAuth": []}], "summary": "Comment on an approved blog", "responses": {"201": {"description": "Created"}, "403": {"description": "Blog not approved"}, "404": {"description": "Blog not found"}}}},
        "/comments/blog/{blogId}": {"get": {"tags": ["comments"], "security": [{"BearerAuth": []}], "summary": "Paginated comments of a blog", "parameters": [{"name": "blogId", "in": "path", "required": true, "type": "integer"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK"}}}},
        "/comments/{id}": {
            "get": {"tags": ["comments"], "security": [{"BearerAuth": []}], "summary": "A single comment", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["comments"], "security": [{"BearerAuth": []}], "summary": "Edit a comment (author or admin)", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"tags": ["comments"], "security": [{"BearerAuth": []}], "summary": "Delete a comment (author or admin)", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/admin/users": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "List user accounts", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin/admins": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "List admin accounts", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin/users/{id}": {
            "get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "One account", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Delete an account", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}}
        },
        "/admin/users/{id}/activate": {"patch": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Activate an account", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Admin target needs super admin"}}}},
        "/admin/users/{id}/deactivate": {"patch": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Deactivate an account", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Admin target needs super admin"}}}},
        "/admin/users/{id}/reset-password": {"patch": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Set a new password", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Validation"}, "403": {"description": "Forbidden"}}}},
        "/admin/users/{id}/role": {"patch": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Change the role (super admin)", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Validation"}, "403": {"description": "Forbidden"}}}},
        "/admin/admins/{id}/activate": {"patch": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Activate an admin account (super admin)", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin/admins/{id}/deactivate": {"patch": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Deactivate an admin account (super admin)", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin/stats": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Account and blog counters", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/categories": {
            "get": {"tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["categories"], "security": [{"BearerAuth": []}], "summary": "Create a category (admin)", "responses": {"201": {"description": "Created"}, "409": {"description": "Name in use"}}}
        },
        "/categories/{id}": {
            "get": {"tags": ["categories"], "summary": "One category", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["categories"], "security": [{"BearerAuth": []}], "summary": "Rename a category (admin)", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Name in use"}}},
            "delete": {"tags": ["categories"], "security": [{"BearerAuth": []}], "summary": "Delete a category (admin)", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "blogdesk API",
	Description:      "Blog publishing with an admin review workflow.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
