package repository

import (
	"context"

	"github.com/khmer25/shop-api/internal/model"
	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) List(ctx context.Context, limit, offset int, userID *uint) ([]model.Cart, int64, error) {
	var carts []model.Cart
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Cart{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Limit(limit).Offset(offset).Order("id").Find(&carts).Error; err != nil {
		return nil, 0, err
	}
	return carts, total, nil
}

func (r *CartRepository) GetByID(ctx context.Context, id uint) (*model.Cart, error) {
	var cart model.Cart
	if err := r.db.WithContext(ctx).First(&cart, id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) Create(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *CartRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Cart{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Cart{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
