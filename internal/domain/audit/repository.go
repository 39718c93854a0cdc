package audit

import "context"

// Repository is write-once: there is no update or delete.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	List(ctx context.Context) ([]Entry, error)
}
