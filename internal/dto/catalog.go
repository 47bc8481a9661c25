package dto

import "time"

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SupplierRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	ContactName string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       string `json:"phone" binding:"omitempty,phone"`
	Address     string `json:"address" binding:"omitempty,max=255"`
}

type SupplierResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	PriceCents  int64    `json:"price_cents" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"omitempty,gte=0"`
	Images      []string `json:"images" binding:"omitempty,dive,url"`
	CategoryID  *uint    `json:"category_id"`
	SupplierID  *uint    `json:"supplier_id"`
}

type ProductResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images,omitempty"`
	CategoryID  *uint     `json:"category_id,omitempty"`
	SupplierID  *uint     `json:"supplier_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BannerRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	ImageURL string `json:"image_url" binding:"required,url"`
	LinkURL  string `json:"link_url" binding:"omitempty,url"`
	Active   *bool  `json:"active"`
}

type BannerResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
