package permission

import (
	"regexp"
	"strings"
)

type Capability string

const (
	CapRequest       Capability = "canRequest"
	CapApprove       Capability = "canApprove"
	CapEditInventory Capability = "canEditInventory"
)

// DepartmentPermission is keyed by department name, unique case-insensitively.
type DepartmentPermission struct {
	Department       string `gorm:"column:department;type:varchar(64);primaryKey" json:"department"`
	CanRequest       bool   `gorm:"column:can_request;not null" json:"canRequest"`
	CanApprove       bool   `gorm:"column:can_approve;not null" json:"canApprove"`
	CanEditInventory bool   `gorm:"column:can_edit_inventory;not null" json:"canEditInventory"`
}

func (DepartmentPermission) TableName() string { return "department_permissions" }

func (p *DepartmentPermission) Allows(c Capability) bool {
	switch c {
	case CapRequest:
		return p.CanRequest
	case CapApprove:
		return p.CanApprove
	case CapEditInventory:
		return p.CanEditInventory
	}
	return false
}

// Patch toggles individual capabilities; nil leaves a flag as is.
type Patch struct {
	CanRequest       *bool `json:"canRequest"`
	CanApprove       *bool `json:"canApprove"`
	CanEditInventory *bool `json:"canEditInventory"`
}

func (p Patch) Empty() bool {
	return p.CanRequest == nil && p.CanApprove == nil && p.CanEditInventory == nil
}

func (p *DepartmentPermission) Apply(patch Patch) {
	if patch.CanRequest != nil {
		p.CanRequest = *patch.CanRequest
	}
	if patch.CanApprove != nil {
		p.CanApprove = *patch.CanApprove
	}
	if patch.CanEditInventory != nil {
		p.CanEditInventory = *patch.CanEditInventory
	}
}

// New registers a department with request rights only.
func New(department string) *DepartmentPermission {
	return &DepartmentPermission{Department: department, CanRequest: true}
}

var reDepartment = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9\s&()\-/]*$`)

// ValidDepartmentName applies the registry naming rule after trimming.
func ValidDepartmentName(name string) bool {
	name = strings.TrimSpace(name)
	return len(name) >= 2 && len(name) <= 64 && reDepartment.MatchString(name)
}
