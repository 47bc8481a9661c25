package database

import (
	"github.com/khmer25/shop-api/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultAdmin defines the default admin user credentials
type DefaultAdmin struct {
	Name     string
	Phone    string
	Password string
}

// GetDefaultAdmin returns the default admin user
func GetDefaultAdmin() DefaultAdmin {
	return DefaultAdmin{
		Name:     "Admin",
		Phone:    "+85512345678",
		Password: "Admin@123", // Change this in production!
	}
}

// Seed creates initial data for the database
func Seed(db *gorm.DB) error {
	return SeedUsers(db)
}

// SeedUsers creates the default admin user if not exists
func SeedUsers(db *gorm.DB) error {
	admin := GetDefaultAdmin()

	var existingUser model.User
	result := db.Where("phone = ?", admin.Phone).First(&existingUser)

	if result.Error == nil {
		// User already exists, skip seeding
		return nil
	}

	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		Name:     admin.Name,
		Phone:    admin.Phone,
		Password: string(hashedPassword),
	}

	return db.Create(&user).Error
}
