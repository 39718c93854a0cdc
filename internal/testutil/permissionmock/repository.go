package permissionmock

import (
	"context"

	domain "lab-inventory/internal/domain/permission"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn func(ctx context.Context, p *domain.DepartmentPermission) error
	SaveFn   func(ctx context.Context, p *domain.DepartmentPermission) error
	GetFn    func(ctx context.Context, department string) (*domain.DepartmentPermission, error)
	ExistsFn func(ctx context.Context, department string) (bool, error)
	ListFn   func(ctx context.Context) ([]domain.DepartmentPermission, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.DepartmentPermission) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *Repo) Save(ctx context.Context, p *domain.DepartmentPermission) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
func (m *Repo) Get(ctx context.Context, department string) (*domain.DepartmentPermission, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, department)
	}
	return nil, context.Canceled
}
func (m *Repo) Exists(ctx context.Context, department string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, department)
	}
	return false, context.Canceled
}
func (m *Repo) List(ctx context.Context) ([]domain.DepartmentPermission, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}
