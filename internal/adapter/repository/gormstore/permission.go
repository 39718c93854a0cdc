package gormstore

import (
	"context"

	"gorm.io/gorm"

	"lab-inventory/internal/domain/permission"
)

type PermissionRepository struct{ db *gorm.DB }

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Create(ctx context.Context, p *permission.DepartmentPermission) error {
	return classify(r.db.WithContext(ctx).Create(p).Error, nil, permission.ErrExists)
}

// Save writes the flags by primary key; Select("*") keeps false values.
func (r *PermissionRepository) Save(ctx context.Context, p *permission.DepartmentPermission) error {
	err := r.db.WithContext(ctx).
		Model(&permission.DepartmentPermission{}).
		Where("department = ?", p.Department).
		Select("can_request", "can_approve", "can_edit_inventory").
		Updates(p).Error
	return classify(err, nil, nil)
}

func (r *PermissionRepository) Get(ctx context.Context, department string) (*permission.DepartmentPermission, error) {
	var out permission.DepartmentPermission
	err := r.db.WithContext(ctx).
		Where("lower(department) = lower(?)", department).
		First(&out).Error
	if err != nil {
		return nil, classify(err, permission.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *PermissionRepository) Exists(ctx context.Context, department string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&permission.DepartmentPermission{}).
		Where("lower(department) = lower(?)", department).
		Count(&n).Error
	return n > 0, classify(err, nil, nil)
}

func (r *PermissionRepository) List(ctx context.Context) ([]permission.DepartmentPermission, error) {
	var out []permission.DepartmentPermission
	err := r.db.WithContext(ctx).Order("department").Find(&out).Error
	return out, classify(err, nil, nil)
}
