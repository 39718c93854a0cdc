package gormstore

import (
	"context"

	"gorm.io/gorm"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/inventory"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/request"
	"lab-inventory/internal/domain/user"
)

// Models lists every persisted table in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&permission.DepartmentPermission{},
		&inventory.Item{},
		&request.Request{},
		&audit.Entry{},
	}
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}
