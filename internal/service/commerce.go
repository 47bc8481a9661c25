package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/khmer25/shop-api/internal/dto"
	apperrors "github.com/khmer25/shop-api/internal/errors"
	"github.com/khmer25/shop-api/internal/model"
	"github.com/khmer25/shop-api/internal/repository"
	"github.com/khmer25/shop-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CommerceService covers carts, orders and order items.
type CommerceService struct {
	carts      *repository.CartRepository
	orders     *repository.OrderRepository
	orderItems *repository.OrderItemRepository
	products   *repository.ProductRepository
	publisher  EventPublisher
}

func NewCommerceService(
	carts *repository.CartRepository,
	orders *repository.OrderRepository,
	orderItems *repository.OrderItemRepository,
	products *repository.ProductRepository,
	publisher EventPublisher,
) *CommerceService {
	return &CommerceService{
		carts:      carts,
		orders:     orders,
		orderItems: orderItems,
		products:   products,
		publisher:  publisher,
	}
}

// --- Carts ---

func (s *CommerceService) ListCarts(ctx context.Context, limit, offset int, userID *uint) (*ListResult[dto.CartResponse], error) {
	carts, total, err := s.carts.List(ctx, limit, offset, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := &ListResult[dto.CartResponse]{
		Items:     make([]dto.CartResponse, 0, len(carts)),
		Total:     total,
		PageTotal: pageTotal(total, limit),
	}
	for i := range carts {
		res.Items = append(res.Items, toCartResponse(&carts[i]))
	}
	return res, nil
}

func (s *CommerceService) GetCart(ctx context.Context, id uint) (*dto.CartResponse, error) {
	cart, err := s.carts.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	resp := toCartResponse(cart)
	return &resp, nil
}

func (s *CommerceService) CreateCart(ctx context.Context, req *dto.CartRequest) (*dto.CartResponse, error) {
	// The referenced product must exist; anonymous carts are allowed.
	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	cart := &model.Cart{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	resp := toCartResponse(cart)
	return &resp, nil
}

func (s *CommerceService) UpdateCart(ctx context.Context, id uint, req *dto.CartRequest) (*dto.CartResponse, error) {
	updates := map[string]interface{}{
		"user_id":    req.UserID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	}
	if err := s.carts.Update(ctx, id, updates); err != nil {
		return nil, mapStoreErr(err)
	}
	return s.GetCart(ctx, id)
}

func (s *CommerceService) DeleteCart(ctx context.Context, id uint) error {
	if err := s.carts.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// --- Orders ---

func (s *CommerceService) ListOrders(ctx context.Context, limit, offset int, userID *uint, status string) (*ListResult[dto.OrderResponse], error) {
	orders, total, err := s.orders.List(ctx, limit, offset, userID, status)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := &ListResult[dto.OrderResponse]{
		Items:     make([]dto.OrderResponse, 0, len(orders)),
		Total:     total,
		PageTotal: pageTotal(total, limit),
	}
	for i := range orders {
		res.Items = append(res.Items, toOrderResponse(&orders[i]))
	}
	return res, nil
}

func (s *CommerceService) GetOrder(ctx context.Context, id uint) (*dto.OrderResponse, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// CreateOrder prices every line from the current product catalog and
// recomputes the total server-side; client-supplied prices are never
// trusted.
func (s *CommerceService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	items := make([]model.OrderItem, 0, len(req.Items))
	var totalCents int64

	for _, line := range req.Items {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrRecordNotFound
			}
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		items = append(items, model.OrderItem{
			ProductID:      product.ID,
			Quantity:       line.Quantity,
			UnitPriceCents: product.PriceCents,
		})
		totalCents += product.PriceCents * int64(line.Quantity)
	}

	var shipping datatypes.JSON
	if len(req.ShippingAddress) > 0 {
		raw, err := json.Marshal(req.ShippingAddress)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInvalidInput, err)
		}
		shipping = datatypes.JSON(raw)
	}

	order := &model.Order{
		UserID:          req.UserID,
		Status:          model.OrderStatusPending,
		TotalCents:      totalCents,
		ShippingAddress: shipping,
		Items:           items,
	}

	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.GetLogger().Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", order.UserID),
		zap.Int64("total_cents", order.TotalCents),
	)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, "order.created", map[string]any{
			"order_id":    order.ID,
			"user_id":     order.UserID,
			"total_cents": order.TotalCents,
		}); err != nil {
			logger.GetLogger().Warn("Failed to publish event",
				zap.String("event_type", "order.created"),
				zap.Error(err),
			)
		}
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *CommerceService) UpdateOrderStatus(ctx context.Context, id uint, req *dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := s.orders.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, mapStoreErr(err)
	}
	return s.GetOrder(ctx, id)
}

func (s *CommerceService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// --- Order items ---

func (s *CommerceService) ListOrderItems(ctx context.Context, limit, offset int, orderID *uint) (*ListResult[dto.OrderItemResponse], error) {
	items, total, err := s.orderItems.List(ctx, limit, offset, orderID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := &ListResult[dto.OrderItemResponse]{
		Items:     make([]dto.OrderItemResponse, 0, len(items)),
		Total:     total,
		PageTotal: pageTotal(total, limit),
	}
	for i := range items {
		res.Items = append(res.Items, toOrderItemResponse(&items[i]))
	}
	return res, nil
}

func (s *CommerceService) GetOrderItem(ctx context.Context, id uint) (*dto.OrderItemResponse, error) {
	item, err := s.orderItems.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	resp := toOrderItemResponse(item)
	return &resp, nil
}

func (s *CommerceService) DeleteOrderItem(ctx context.Context, id uint) error {
	if err := s.orderItems.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// --- projections ---

func toCartResponse(c *model.Cart) dto.CartResponse {
	return dto.CartResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		ProductID: c.ProductID,
		Quantity:  c.Quantity,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toOrderResponse(o *model.Order) dto.OrderResponse {
	var shipping map[string]any
	if len(o.ShippingAddress) > 0 {
		_ = json.Unmarshal(o.ShippingAddress, &shipping)
	}

	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, toOrderItemResponse(&o.Items[i]))
	}

	return dto.OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status,
		TotalCents:      o.TotalCents,
		ShippingAddress: shipping,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderItemResponse(i *model.OrderItem) dto.OrderItemResponse {
	return dto.OrderItemResponse{
		ID:             i.ID,
		OrderID:        i.OrderID,
		ProductID:      i.ProductID,
		Quantity:       i.Quantity,
		UnitPriceCents: i.UnitPriceCents,
	}
}
