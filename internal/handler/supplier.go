package handler

import (
	"net/http"

	"github.com/khmer25/shop-api/internal/constants"
	"github.com/khmer25/shop-api/internal/dto"
	"github.com/khmer25/shop-api/internal/service"
	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	catalog *service.CatalogService
}

func NewSupplierHandler(catalog *service.CatalogService) *SupplierHandler {
	return &SupplierHandler{catalog: catalog}
}

func (h *SupplierHandler) List(c *gin.Context) {
	p := constants.ParsePaginationParams(c)
	res, err := h.catalog.ListSuppliers(c.Request.Context(), p.Limit, p.Offset, c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	listJSON(c, p.Page, res)
}

func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sup, err := h.catalog.GetSupplier(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sup)
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}
	sup, err := h.catalog.CreateSupplier(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sup)
}

func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}
	sup, err := h.catalog.UpdateSupplier(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sup)
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteSupplier(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
