package moderation

import "fmt"

// Role is the privilege level attached to a profile.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Rank orders roles by privilege. Unknown roles rank below user.
func (r Role) Rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperAdmin:
		return 3
	}
	return 0
}

func (r Role) IsValid() bool { return r.Rank() > 0 }

// IsAdmin is true for admin and super_admin.
func (r Role) IsAdmin() bool { return r.Rank() >= RoleAdmin.Rank() }

func (r Role) String() string { return string(r) }

// AtLeast reports whether r is as privileged as min.
func (r Role) AtLeast(min Role) bool { return r.IsValid() && r.Rank() >= min.Rank() }

func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return r, nil
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) Owns(ownerID string) bool { return a.ID != "" && a.ID == ownerID }

// ListScope tells a blog listing which rows the actor may see.
type ListScope int

const (
	// ScopeAll returns every blog.
	ScopeAll ListScope = iota
	// ScopeApprovedOrOwn returns approved blogs plus the actor's own.
	ScopeApprovedOrOwn
)

func BlogListScope(a Actor) ListScope {
	if a.Role.IsAdmin() {
		return ScopeAll
	}
	return ScopeApprovedOrOwn
}

func CanReadBlog(a Actor, ownerID string, status Status) bool {
	return status == StatusApproved || a.Owns(ownerID) || a.Role.IsAdmin()
}

func CanEditBlog(a Actor, ownerID string) bool {
	return a.Owns(ownerID) || a.Role.IsAdmin()
}

func CanDeleteBlog(a Actor, ownerID string) bool {
	return a.Owns(ownerID) || a.Role.IsAdmin()
}

// CanSubmit is author-only: admins cannot push someone else's draft into review.
func CanSubmit(a Actor, ownerID string) bool {
	return a.Owns(ownerID)
}

func CanReview(a Actor) bool {
	return a.Role.IsAdmin()
}

func CanComment(status Status) bool {
	return status == StatusApproved
}

func CanModifyComment(a Actor, authorID string) bool {
	return a.Owns(authorID) || a.Role.IsAdmin()
}

// AccountAction is an admin operation on somebody's profile.
type AccountAction string

const (
	ActionView          AccountAction = "view"
	ActionActivate      AccountAction = "activate"
	ActionDeactivate    AccountAction = "deactivate"
	ActionResetPassword AccountAction = "reset_password"
	ActionDelete        AccountAction = "delete"
)

// CanManageAccount decides whether a may run action against the profile
// (targetID, target). Admins manage plain users; accounts holding admin or
// super_admin can only be touched by a super_admin. Nobody locks themselves
// out through the admin surface.
func CanManageAccount(a Actor, action AccountAction, targetID string, target Role) error {
	if !a.Role.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if a.Owns(targetID) && (action == ActionDeactivate || action == ActionDelete) {
		return fmt.Errorf("%w: cannot %s your own account", ErrForbidden, action)
	}
	if action == ActionView {
		return nil
	}
	if target.IsAdmin() && a.Role != RoleSuperAdmin {
		return fmt.Errorf("%w: only a super admin can %s an admin account", ErrForbidden, action)
	}
	return nil
}

// CanAssignRole gates promotion and demotion.
func CanAssignRole(a Actor, targetID string) error {
	if a.Role != RoleSuperAdmin {
		return fmt.Errorf("%w: only a super admin can change roles", ErrForbidden)
	}
	if a.Owns(targetID) {
		return fmt.Errorf("%w: cannot change your own role", ErrForbidden)
	}
	return nil
}
