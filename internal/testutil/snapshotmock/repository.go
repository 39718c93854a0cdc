package snapshotmock

import (
	"context"

	domain "lab-inventory/internal/domain/snapshot"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	LoadFn    func(ctx context.Context) (*domain.Snapshot, error)
	ReplaceFn func(ctx context.Context, s *domain.Snapshot) error
}

func (m *Repo) Load(ctx context.Context) (*domain.Snapshot, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx)
	}
	return nil, context.Canceled
}
func (m *Repo) Replace(ctx context.Context, s *domain.Snapshot) error {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, s)
	}
	return nil
}
