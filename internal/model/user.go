package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `gorm:"column:name;not null"`
	Phone    string `gorm:"column:phone;unique;not null"`
	Password string `gorm:"column:password;not null"`
	Address  string `gorm:"column:address"`
}

// AuthToken binds an opaque key to the user that owns it. A user keeps at
// most one live token: login deletes every prior row before inserting.
type AuthToken struct {
	Key       string    `gorm:"column:key;primaryKey;size:40"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	User      User      `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"column:created_at"`
}
