package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `gorm:"column:name;not null"`
	Description string `gorm:"column:description"`
}

type Supplier struct {
	gorm.Model
	Name        string `gorm:"column:name;not null"`
	ContactName string `gorm:"column:contact_name"`
	Phone       string `gorm:"column:phone"`
	Address     string `gorm:"column:address"`
}

type Product struct {
	gorm.Model
	Name        string         `gorm:"column:name;not null"`
	Description string         `gorm:"column:description"`
	PriceCents  int64          `gorm:"column:price_cents;not null"`
	Stock       int            `gorm:"column:stock;not null;default:0"`
	Images      datatypes.JSON `gorm:"column:images"`
	CategoryID  *uint          `gorm:"column:category_id;index"`
	SupplierID  *uint          `gorm:"column:supplier_id;index"`
	Category    *Category      `gorm:"foreignKey:CategoryID"`
	Supplier    *Supplier      `gorm:"foreignKey:SupplierID"`
}

type Banner struct {
	gorm.Model
	Title    string `gorm:"column:title;not null"`
	ImageURL string `gorm:"column:image_url;not null"`
	LinkURL  string `gorm:"column:link_url"`
	Active   bool   `gorm:"column:active;default:true"`
}
