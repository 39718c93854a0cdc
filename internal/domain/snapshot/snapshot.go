// Package snapshot defines the point-in-time read view handed to presentation,
// report and backup collaborators, and the role-scoped projection over it.
package snapshot

import (
	"context"
	"time"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/inventory"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/request"
	"lab-inventory/internal/domain/user"
)

type Snapshot struct {
	Users       []user.User                       `json:"users"`
	Inventory   []inventory.Item                  `json:"inventory"`
	Requests    []request.Request                 `json:"requests"`
	AuditLogs   []audit.Entry                     `json:"auditLogs"`
	Permissions []permission.DepartmentPermission `json:"permissions"`
}

// Backup is an exported snapshot with provenance.
type Backup struct {
	ExportedAt time.Time `json:"exportedAt"`
	App        string    `json:"app"`
	Snapshot
}

// Project filters s for viewer. Admins see everything; anyone else sees only
// their own account, their department's items and permissions, their own
// requests, and audit entries they authored or that target those requests.
// s is never modified.
func Project(s Snapshot, viewer user.Actor) Snapshot {
	if viewer.IsAdmin() {
		return s
	}
	out := Snapshot{
		Users:       []user.User{},
		Inventory:   []inventory.Item{},
		Requests:    []request.Request{},
		AuditLogs:   []audit.Entry{},
		Permissions: []permission.DepartmentPermission{},
	}
	for _, u := range s.Users {
		if u.ID == viewer.ID {
			out.Users = append(out.Users, u)
		}
	}
	for _, it := range s.Inventory {
		if it.Department == viewer.Department {
			out.Inventory = append(out.Inventory, it)
		}
	}
	own := make(map[string]struct{})
	for _, r := range s.Requests {
		if r.RequesterID == viewer.ID {
			out.Requests = append(out.Requests, r)
			own[r.ID] = struct{}{}
		}
	}
	for _, e := range s.AuditLogs {
		_, mine := own[e.Target]
		if e.ActorID == viewer.ID || mine {
			out.AuditLogs = append(out.AuditLogs, e)
		}
	}
	for _, p := range s.Permissions {
		if p.Department == viewer.Department {
			out.Permissions = append(out.Permissions, p)
		}
	}
	return out
}

type Repository interface {
	// Load reads every collection from committed state.
	Load(ctx context.Context) (*Snapshot, error)
	// Replace wipes every table and reloads it from s. Callers run it inside
	// a transaction so the store is never observed half-restored.
	Replace(ctx context.Context, s *Snapshot) error
}
