package usermock

import (
	"context"

	domain "lab-inventory/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to nil; reads default to context.Canceled.
type Repo struct {
	CreateFn             func(ctx context.Context, u *domain.User) error
	SaveFn               func(ctx context.Context, u *domain.User) error
	GetByIDFn            func(ctx context.Context, id string) (*domain.User, error)
	GetByIDForUpdateFn   func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn         func(ctx context.Context, email string) (*domain.User, error)
	LockActiveAdminIDsFn func(ctx context.Context) ([]string, error)
	ListFn               func(ctx context.Context) ([]domain.User, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}
func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}
func (m *Repo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}
func (m *Repo) LockActiveAdminIDs(ctx context.Context) ([]string, error) {
	if m.LockActiveAdminIDsFn != nil {
		return m.LockActiveAdminIDsFn(ctx)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}
