package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByIDForUpdate takes an exclusive row lock for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// LockActiveAdminIDs locks every active admin row and returns their ids, so
	// the last-admin check composes atomically with the mutation that follows.
	LockActiveAdminIDs(ctx context.Context) ([]string, error)
	List(ctx context.Context) ([]User, error)
}
