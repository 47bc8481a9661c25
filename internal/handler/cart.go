package handler

import (
	"net/http"

	"github.com/khmer25/shop-api/internal/constants"
	"github.com/khmer25/shop-api/internal/dto"
	"github.com/khmer25/shop-api/internal/service"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	commerce *service.CommerceService
}

func NewCartHandler(commerce *service.CommerceService) *CartHandler {
	return &CartHandler{commerce: commerce}
}

func (h *CartHandler) List(c *gin.Context) {
	p := constants.ParsePaginationParams(c)
	res, err := h.commerce.ListCarts(c.Request.Context(), p.Limit, p.Offset, queryUint(c, "user"))
	if err != nil {
		fail(c, err)
		return
	}
	listJSON(c, p.Page, res)
}

func (h *CartHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cart, err := h.commerce.GetCart(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) Create(c *gin.Context) {
	var req dto.CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}
	cart, err := h.commerce.CreateCart(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (h *CartHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}
	cart, err := h.commerce.UpdateCart(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.commerce.DeleteCart(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
