package inventory

import "context"

type Repository interface {
	Create(ctx context.Context, it *Item) error
	Save(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Item, error)
	ExistsByName(ctx context.Context, department, name string) (bool, error)
	List(ctx context.Context) ([]Item, error)
}
