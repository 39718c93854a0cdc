package request

import "context"

type Repository interface {
	Create(ctx context.Context, r *Request) error
	Save(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	// GetByIDForUpdate locks the row so concurrent reviewers serialize on it.
	GetByIDForUpdate(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context) ([]Request, error)
}
