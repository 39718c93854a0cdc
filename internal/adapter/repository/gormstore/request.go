package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lab-inventory/internal/domain/request"
)

type RequestRepository struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) *RequestRepository { return &RequestRepository{db: db} }

func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	return classify(r.db.WithContext(ctx).Create(req).Error, nil, nil)
}

func (r *RequestRepository) Save(ctx context.Context, req *request.Request) error {
	return classify(r.db.WithContext(ctx).Save(req).Error, nil, nil)
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (*request.Request, error) {
	var out request.Request
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, classify(err, request.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *RequestRepository) GetByIDForUpdate(ctx context.Context, id string) (*request.Request, error) {
	var out request.Request
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, classify(err, request.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *RequestRepository) List(ctx context.Context) ([]request.Request, error) {
	var out []request.Request
	err := r.db.WithContext(ctx).Order("request_date DESC, id DESC").Find(&out).Error
	return out, classify(err, nil, nil)
}
