package gormstore

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lab-inventory/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return classify(r.db.WithContext(ctx).Create(u).Error, nil, user.ErrEmailExists)
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	return classify(r.db.WithContext(ctx).Save(u).Error, nil, user.ErrEmailExists)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var out user.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if err != nil {
		return nil, classify(err, user.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id string) (*user.User, error) {
	var out user.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, classify(err, user.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var out user.User
	err := r.db.WithContext(ctx).
		Where("lower(email) = lower(?)", strings.TrimSpace(email)).
		First(&out).Error
	if err != nil {
		return nil, classify(err, user.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *UserRepository) LockActiveAdminIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("role = ? AND is_active = ?", user.RoleAdmin, true).
		Order("id").
		Pluck("id", &ids).Error
	return ids, classify(err, nil, nil)
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, classify(err, nil, nil)
}
