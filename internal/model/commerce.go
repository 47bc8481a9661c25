package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order status values.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

// Cart rows may be anonymous: the storefront creates carts before the
// shopper ever logs in, so UserID is nullable.
type Cart struct {
	gorm.Model
	UserID    *uint    `gorm:"column:user_id;index"`
	ProductID uint     `gorm:"column:product_id;not null;index"`
	Quantity  int      `gorm:"column:quantity;not null;default:1"`
	Product   *Product `gorm:"foreignKey:ProductID"`
}

type Order struct {
	gorm.Model
	UserID          uint           `gorm:"column:user_id;not null;index"`
	Status          string         `gorm:"column:status;not null;default:pending"`
	TotalCents      int64          `gorm:"column:total_cents;not null;default:0"`
	ShippingAddress datatypes.JSON `gorm:"column:shipping_address"`
	Items           []OrderItem    `gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	gorm.Model
	OrderID        uint     `gorm:"column:order_id;not null;index"`
	ProductID      uint     `gorm:"column:product_id;not null;index"`
	Quantity       int      `gorm:"column:quantity;not null"`
	UnitPriceCents int64    `gorm:"column:unit_price_cents;not null"`
	Product        *Product `gorm:"foreignKey:ProductID"`
}
