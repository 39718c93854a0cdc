package request

import "time"

type Status string

const (
	StatusPending           Status = "pending"
	StatusApproved          Status = "approved"
	StatusPartiallyApproved Status = "partially_approved"
	StatusRejected          Status = "rejected"
)

// Terminal reports whether no further transition may leave s.
func (s Status) Terminal() bool { return s != StatusPending }

// Decision is what the reviewer asked for; the final Status may differ.
type Decision string

const (
	DecisionApprove          Decision = "approved"
	DecisionPartiallyApprove Decision = "partially_approved"
	DecisionReject           Decision = "rejected"
)

func (d Decision) Valid() bool {
	switch d {
	case DecisionApprove, DecisionPartiallyApprove, DecisionReject:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Request copies requester and item attributes at submission time so later
// renames never rewrite history. ApprovedQty is non-nil only for approved and
// partially_approved.
type Request struct {
	ID            string     `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	RequesterID   string     `gorm:"column:requester_id;type:varchar(64);not null;index" json:"requesterId"`
	RequesterName string     `gorm:"column:requester_name;type:varchar(120);not null" json:"requesterName"`
	Department    string     `gorm:"column:department;type:varchar(64);not null" json:"department"`
	ItemID        string     `gorm:"column:item_id;type:varchar(64);not null;index" json:"itemId"`
	ItemName      string     `gorm:"column:item_name;type:varchar(160);not null" json:"itemName"`
	RequestedQty  int        `gorm:"column:requested_qty;not null" json:"requestedQty"`
	ApprovedQty   *int       `gorm:"column:approved_qty" json:"approvedQty"`
	Unit          string     `gorm:"column:unit;type:varchar(32);not null" json:"unit"`
	Status        Status     `gorm:"column:status;type:varchar(24);not null;index" json:"status"`
	Priority      Priority   `gorm:"column:priority;type:varchar(8);not null" json:"priority"`
	RequestDate   time.Time  `gorm:"column:request_date;not null;index" json:"requestDate"`
	ReviewedBy    *string    `gorm:"column:reviewed_by;type:varchar(120)" json:"reviewedBy"`
	ReviewedDate  *time.Time `gorm:"column:reviewed_date" json:"reviewedDate"`
	ReviewNote    *string    `gorm:"column:review_note;type:text" json:"reviewNote"`
}

func (Request) TableName() string { return "inventory_requests" }
