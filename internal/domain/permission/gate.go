package permission

import (
	"context"
	"errors"
)

// Granted reports whether department holds capability c, reading through
// repo so a transaction-bound repository sees the locked view. Unregistered
// departments hold nothing.
func Granted(ctx context.Context, repo Repository, department string, c Capability) (bool, error) {
	p, err := repo.Get(ctx, department)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Allows(c), nil
}
