package repository

import (
	"context"

	"github.com/khmer25/shop-api/internal/model"
	"github.com/khmer25/shop-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// PhoneExists reports whether a user with the given phone is registered.
func (r *UserRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("phone = ?", phone).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to create user",
			zap.String("phone", user.Phone),
			zap.Error(result.Error),
		)
		return result.Error
	}
	return nil
}
