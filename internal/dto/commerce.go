package dto

import "time"

type CartRequest struct {
	UserID    *uint `json:"user_id"`
	ProductID uint  `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gte=1"`
}

type CartResponse struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id,omitempty"`
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gte=1"`
}

type CreateOrderRequest struct {
	UserID          uint               `json:"user_id" binding:"required"`
	ShippingAddress map[string]any     `json:"shipping_address"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid shipped cancelled"`
}

type OrderItemResponse struct {
	ID             uint  `json:"id"`
	OrderID        uint  `json:"order_id"`
	ProductID      uint  `json:"product_id"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unit_price_cents"`
}

type OrderResponse struct {
	ID              uint                `json:"id"`
	UserID          uint                `json:"user_id"`
	Status          string              `json:"status"`
	TotalCents      int64               `json:"total_cents"`
	ShippingAddress map[string]any      `json:"shipping_address,omitempty"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
