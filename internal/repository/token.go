package repository

import (
	"context"

	"github.com/khmer25/shop-api/internal/model"
	"gorm.io/gorm"
)

// TokenRepository is the durable token -> user mapping. It is the only
// place token rows are read or written, so the backing store could be
// swapped without touching the auth flow.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetByKey resolves a token key to its record, with the owning user
// preloaded for the authenticator.
func (r *TokenRepository) GetByKey(ctx context.Context, key string) (*model.AuthToken, error) {
	var token model.AuthToken
	result := r.db.WithContext(ctx).Preload("User").
		Where("key = ?", key).
		First(&token)
	if result.Error != nil {
		return nil, result.Error
	}
	return &token, nil
}

// Insert persists a freshly minted token. A duplicate key violates the
// primary key constraint and surfaces as an error; given 160 bits of
// entropy that is treated as fatal for the request, not retried.
func (r *TokenRepository) Insert(ctx context.Context, token *model.AuthToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// Replace deletes every token owned by the user and inserts the new one
// in a single transaction, so two racing logins cannot interleave the
// delete and insert halves.
func (r *TokenRepository) Replace(ctx context.Context, userID uint, token *model.AuthToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Deleting zero rows is fine: registration issues the first token.
		if err := tx.Where("user_id = ?", userID).Delete(&model.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

// DeleteByUser removes all tokens owned by the user.
func (r *TokenRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.AuthToken{}).Error
}

// CountByUser returns the number of live tokens a user holds.
func (r *TokenRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.AuthToken{}).
		Where("user_id = ?", userID).
		Count(&count)
	return count, result.Error
}
