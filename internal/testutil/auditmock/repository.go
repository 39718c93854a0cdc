package auditmock

import (
	"context"
	"sync"

	domain "lab-inventory/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository. Appended
// entries are always recorded in Entries, whether or not AppendFn is set.
type Repo struct {
	AppendFn func(ctx context.Context, e *domain.Entry) error
	ListFn   func(ctx context.Context) ([]domain.Entry, error)

	mu      sync.Mutex
	Entries []domain.Entry
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		if err := m.AppendFn(ctx, e); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Entries = append(m.Entries, *e)
	m.mu.Unlock()
	return nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Entry, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Entry(nil), m.Entries...), nil
}

// Actions returns the recorded actions in append order.
func (m *Repo) Actions() []domain.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Action, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.Action
	}
	return out
}
