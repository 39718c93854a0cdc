package gormstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lab-inventory/internal/domain/request"
	"lab-inventory/internal/domain/uow"
)

type GormUoW struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUoW binds a unit of work to db. A positive lockTimeout bounds how long
// a row lock is awaited before the store reports contention.
func NewGormUoW(db *gorm.DB, lockTimeout time.Duration) *GormUoW {
	return &GormUoW{db: db, lockTimeout: lockTimeout}
}

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:       &UserRepository{db: tx},
		Items:       &ItemRepository{db: tx},
		Requests:    &RequestRepository{db: tx},
		Audit:       &AuditRepository{db: tx},
		Permissions: &PermissionRepository{db: tx},
		Snapshots:   &SnapshotRepository{db: tx},
	}
}

func (u *GormUoW) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.setLockTimeout(tx); err != nil {
			return err
		}
		return fn(tx)
	})
	return classify(err, nil, nil)
}

func (u *GormUoW) setLockTimeout(tx *gorm.DB) error {
	if u.lockTimeout <= 0 {
		return nil
	}
	switch tx.Dialector.Name() {
	case "mysql":
		secs := max(int(u.lockTimeout/time.Second), 1)
		return tx.Exec("SET SESSION innodb_lock_wait_timeout = ?", secs).Error
	case "postgres":
		return tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", u.lockTimeout.Milliseconds())).Error
	}
	// sqlite serializes writers itself
	return nil
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.transaction(ctx, func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

func (u *GormUoW) WithinRequestTx(ctx context.Context, requestID string, fn func(r uow.Repos, req *request.Request) error) error {
	return u.transaction(ctx, func(tx *gorm.DB) error {
		r := repos(tx)
		// the request row is the serialization point for concurrent reviews
		req, err := r.Requests.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		return fn(r, req)
	})
}
