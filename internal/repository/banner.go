package repository

import (
	"context"

	"github.com/khmer25/shop-api/internal/model"
	"gorm.io/gorm"
)

type BannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

func (r *BannerRepository) List(ctx context.Context, limit, offset int, activeOnly bool) ([]model.Banner, int64, error) {
	var banners []model.Banner
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Banner{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Limit(limit).Offset(offset).Order("id").Find(&banners).Error; err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

func (r *BannerRepository) GetByID(ctx context.Context, id uint) (*model.Banner, error) {
	var banner model.Banner
	if err := r.db.WithContext(ctx).First(&banner, id).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *BannerRepository) Create(ctx context.Context, banner *model.Banner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

func (r *BannerRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Banner{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BannerRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Banner{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
