package gormstore

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/inventory"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/request"
	"lab-inventory/internal/domain/snapshot"
	"lab-inventory/internal/domain/user"
)

const restoreBatch = 200

type SnapshotRepository struct {
	db *gorm.DB
	// A *sql.Tx pins one connection, so tx-bound loads stay sequential.
	parallel bool
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db, parallel: true}
}

func (r *SnapshotRepository) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	out := &snapshot.Snapshot{}
	loads := []func(db *gorm.DB) error{
		func(db *gorm.DB) error { return db.Order("id").Find(&out.Users).Error },
		func(db *gorm.DB) error { return db.Order("id").Find(&out.Inventory).Error },
		func(db *gorm.DB) error { return db.Order("request_date DESC, id DESC").Find(&out.Requests).Error },
		func(db *gorm.DB) error { return db.Order("created_at DESC, id DESC").Find(&out.AuditLogs).Error },
		func(db *gorm.DB) error { return db.Order("department").Find(&out.Permissions).Error },
	}

	if !r.parallel {
		db := r.db.WithContext(ctx)
		for _, load := range loads {
			if err := load(db); err != nil {
				return nil, classify(err, nil, nil)
			}
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, load := range loads {
		g.Go(func() error { return load(r.db.WithContext(gctx)) })
	}
	if err := g.Wait(); err != nil {
		return nil, classify(err, nil, nil)
	}
	return out, nil
}

// Replace deletes children before parents and inserts in the reverse order.
func (r *SnapshotRepository) Replace(ctx context.Context, s *snapshot.Snapshot) error {
	db := r.db.WithContext(ctx)
	wipe := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{
		&request.Request{},
		&inventory.Item{},
		&audit.Entry{},
		&permission.DepartmentPermission{},
		&user.User{},
	} {
		if err := wipe.Delete(model).Error; err != nil {
			return classify(err, nil, nil)
		}
	}

	if len(s.Users) > 0 {
		if err := db.CreateInBatches(s.Users, restoreBatch).Error; err != nil {
			return classify(err, nil, nil)
		}
	}
	if len(s.Permissions) > 0 {
		if err := db.CreateInBatches(s.Permissions, restoreBatch).Error; err != nil {
			return classify(err, nil, nil)
		}
	}
	if len(s.Inventory) > 0 {
		if err := db.CreateInBatches(s.Inventory, restoreBatch).Error; err != nil {
			return classify(err, nil, nil)
		}
	}
	if len(s.Requests) > 0 {
		if err := db.CreateInBatches(s.Requests, restoreBatch).Error; err != nil {
			return classify(err, nil, nil)
		}
	}
	if len(s.AuditLogs) > 0 {
		if err := db.CreateInBatches(s.AuditLogs, restoreBatch).Error; err != nil {
			return classify(err, nil, nil)
		}
	}
	return nil
}
