package account

import "lab-inventory/internal/domain/user"

type CreateUserInput struct {
	Name       string
	Email      string
	Role       user.Role
	Department string
}

// UpdateUserInput is a partial profile edit; nil fields stay as they are.
type UpdateUserInput struct {
	Name       *string
	Department *string
	Role       *user.Role
}

func (in UpdateUserInput) Empty() bool {
	return in.Name == nil && in.Department == nil && in.Role == nil
}

// DefaultPasswords are assigned to accounts created by an admin or restored
// from a backup, keyed by role.
type DefaultPasswords struct {
	Admin string
	Staff string
}

func (p DefaultPasswords) For(r user.Role) string {
	if r == user.RoleAdmin {
		return p.Admin
	}
	return p.Staff
}
