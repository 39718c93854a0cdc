package inventorymock

import (
	"context"

	domain "lab-inventory/internal/domain/inventory"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, it *domain.Item) error
	SaveFn             func(ctx context.Context, it *domain.Item) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Item, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Item, error)
	ExistsByNameFn     func(ctx context.Context, department, name string) (bool, error)
	ListFn             func(ctx context.Context) ([]domain.Item, error)
}

func (m *Repo) Create(ctx context.Context, it *domain.Item) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, it)
	}
	return nil
}
func (m *Repo) Save(ctx context.Context, it *domain.Item) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, it)
	}
	return nil
}
func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Item, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) ExistsByName(ctx context.Context, department, name string) (bool, error) {
	if m.ExistsByNameFn != nil {
		return m.ExistsByNameFn(ctx, department, name)
	}
	return false, nil
}
func (m *Repo) List(ctx context.Context) ([]domain.Item, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}
