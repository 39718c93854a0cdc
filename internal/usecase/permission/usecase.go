package permission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lab-inventory/internal/domain/audit"
	domain "lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/uow"
	"lab-inventory/internal/domain/user"
)

// Usecase is the department registry. Capability checks go through
// domain.Granted inside the caller's transaction.
type Usecase struct {
	uow  uow.UnitOfWork
	repo domain.Repository
	now  func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, repo domain.Repository) *Usecase {
	return &Usecase{uow: tx, repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) CreateDepartment(ctx context.Context, actor user.Actor, name string) (*domain.DepartmentPermission, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminOnly
	}
	name = strings.TrimSpace(name)
	if !domain.ValidDepartmentName(name) {
		return nil, domain.ErrInvalidName
	}

	var out *domain.DepartmentPermission
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		exists, err := r.Permissions.Exists(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrExists
		}
		p := domain.New(name)
		if err := r.Permissions.Create(ctx, p); err != nil {
			return err
		}
		out = p
		return r.Audit.Append(ctx, audit.New(actor.ID, actor.Name, audit.ActionDepartmentCreated, name,
			fmt.Sprintf("Department %s created", name), u.now()))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) SetDepartmentPermission(ctx context.Context, actor user.Actor, department string, patch domain.Patch) (*domain.DepartmentPermission, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminOnly
	}
	department = strings.TrimSpace(department)
	if !domain.ValidDepartmentName(department) {
		return nil, domain.ErrInvalidName
	}
	if patch.Empty() {
		return nil, domain.ErrEmptyPatch
	}

	var out *domain.DepartmentPermission
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Permissions.Get(ctx, department)
		if err != nil {
			return err
		}
		p.Apply(patch)
		if err := r.Permissions.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return r.Audit.Append(ctx, audit.New(actor.ID, actor.Name, audit.ActionPermissionsUpdated, p.Department,
			"Department permissions changed", u.now()))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) List(ctx context.Context) ([]domain.DepartmentPermission, error) {
	return u.repo.List(ctx)
}
