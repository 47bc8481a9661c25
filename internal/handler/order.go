package handler

import (
	"net/http"

	"github.com/khmer25/shop-api/internal/constants"
	"github.com/khmer25/shop-api/internal/dto"
	"github.com/khmer25/shop-api/internal/service"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	commerce *service.CommerceService
}

func NewOrderHandler(commerce *service.CommerceService) *OrderHandler {
	return &OrderHandler{commerce: commerce}
}

func (h *OrderHandler) List(c *gin.Context) {
	p := constants.ParsePaginationParams(c)
	res, err := h.commerce.ListOrders(c.Request.Context(), p.Limit, p.Offset, queryUint(c, "user"), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	listJSON(c, p.Page, res)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.commerce.GetOrder(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}
	order, err := h.commerce.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}
	order, err := h.commerce.UpdateOrderStatus(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.commerce.DeleteOrder(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}

func (h *OrderHandler) ListItems(c *gin.Context) {
	p := constants.ParsePaginationParams(c)
	res, err := h.commerce.ListOrderItems(c.Request.Context(), p.Limit, p.Offset, queryUint(c, "order"))
	if err != nil {
		fail(c, err)
		return
	}
	listJSON(c, p.Page, res)
}

func (h *OrderHandler) GetItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.commerce.GetOrderItem(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *OrderHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.commerce.DeleteOrderItem(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
