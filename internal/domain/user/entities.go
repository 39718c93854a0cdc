package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleStaff }

// User is soft-deactivated only; rows are never deleted outside a restore.
type User struct {
	ID           string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name         string    `gorm:"column:name;type:varchar(120);not null" json:"name"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:ux_users_email" json:"email"`
	Role         Role      `gorm:"column:role;type:varchar(16);not null;index:idx_users_role_active" json:"role"`
	Department   string    `gorm:"column:department;type:varchar(64);not null" json:"department"`
	IsActive     bool      `gorm:"column:is_active;not null;index:idx_users_role_active" json:"isActive"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsActiveAdmin() bool { return u.Role == RoleAdmin && u.IsActive }

// Actor is the authenticated caller supplied by the auth layer.
type Actor struct {
	ID         string
	Name       string
	Role       Role
	Department string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// System is the reserved actor used for alerts raised by the core itself.
var System = Actor{ID: "system", Name: "System"}
