package gormstore

import (
	"context"

	"gorm.io/gorm"

	"lab-inventory/internal/domain/audit"
)

// AuditRepository only ever inserts.
type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Append(ctx context.Context, e *audit.Entry) error {
	return classify(r.db.WithContext(ctx).Create(e).Error, nil, nil)
}

func (r *AuditRepository) List(ctx context.Context) ([]audit.Entry, error) {
	var out []audit.Entry
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, classify(err, nil, nil)
}
