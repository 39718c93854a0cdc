package permission

import "context"

type Repository interface {
	Create(ctx context.Context, p *DepartmentPermission) error
	Save(ctx context.Context, p *DepartmentPermission) error
	// Get looks the department up case-insensitively.
	Get(ctx context.Context, department string) (*DepartmentPermission, error)
	Exists(ctx context.Context, department string) (bool, error)
	List(ctx context.Context) ([]DepartmentPermission, error)
}
