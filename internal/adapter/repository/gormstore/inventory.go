package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lab-inventory/internal/domain/inventory"
)

type ItemRepository struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) *ItemRepository { return &ItemRepository{db: db} }

func (r *ItemRepository) Create(ctx context.Context, it *inventory.Item) error {
	return classify(r.db.WithContext(ctx).Create(it).Error, nil, inventory.ErrDuplicate)
}

func (r *ItemRepository) Save(ctx context.Context, it *inventory.Item) error {
	return classify(r.db.WithContext(ctx).Save(it).Error, nil, nil)
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*inventory.Item, error) {
	var out inventory.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, classify(err, inventory.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *ItemRepository) GetByIDForUpdate(ctx context.Context, id string) (*inventory.Item, error) {
	var out inventory.Item
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, classify(err, inventory.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *ItemRepository) ExistsByName(ctx context.Context, department, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("lower(name) = lower(?) AND department = ?", name, department).
		Count(&n).Error
	return n > 0, classify(err, nil, nil)
}

func (r *ItemRepository) List(ctx context.Context) ([]inventory.Item, error) {
	var out []inventory.Item
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, classify(err, nil, nil)
}
