package audit

import "time"

type Action string

const (
	ActionLogin                    Action = "login"
	ActionRequestSubmitted         Action = "request_submitted"
	ActionRequestApproved          Action = "request_approved"
	ActionRequestPartiallyApproved Action = "request_partially_approved"
	ActionRequestRejected          Action = "request_rejected"
	ActionLowStockAlert            Action = "low_stock_alert"
	ActionInventoryCreated         Action = "inventory_created"
	ActionInventoryUpdated         Action = "inventory_updated"
	ActionUserCreated              Action = "user_created"
	ActionUserUpdated              Action = "user_updated"
	ActionUserActivated            Action = "user_activated"
	ActionUserDeactivated          Action = "user_deactivated"
	ActionDepartmentCreated        Action = "department_created"
	ActionPermissionsUpdated       Action = "permissions_updated"
	ActionDataRestore              Action = "data_restore"
	ActionDataReset                Action = "data_reset"
)

// Entry is append-only. Only a full restore or reset removes entries.
type Entry struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	ActorID   string    `gorm:"column:actor_id;type:varchar(64);not null;index" json:"actorId"`
	ActorName string    `gorm:"column:actor_name;type:varchar(120);not null" json:"actorName"`
	Action    Action    `gorm:"column:action;type:varchar(48);not null;index" json:"action"`
	Target    string    `gorm:"column:target;type:varchar(64);not null;index" json:"target"`
	Details   string    `gorm:"column:details;type:text;not null" json:"details"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index" json:"createdAt"`
}

func (Entry) TableName() string { return "audit_logs" }
