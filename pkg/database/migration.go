package database

import (
	"github.com/khmer25/shop-api/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.AuthToken{},
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.Banner{},
		&model.Cart{},
		&model.Order{},
		&model.OrderItem{},
	)
}
