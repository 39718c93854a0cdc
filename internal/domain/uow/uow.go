package uow

import (
	"context"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/inventory"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/request"
	"lab-inventory/internal/domain/snapshot"
	"lab-inventory/internal/domain/user"
)

// Repos are bound to a single transaction.
type Repos struct {
	Users       user.Repository
	Items       inventory.Repository
	Requests    request.Repository
	Audit       audit.Repository
	Permissions permission.Repository
	Snapshots   snapshot.Repository
}

type UnitOfWork interface {
	// plain tx: commit when fn returns nil, roll back otherwise
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the request row first, then pass it in
	WithinRequestTx(ctx context.Context, requestID string, fn func(r Repos, req *request.Request) error) error
}
