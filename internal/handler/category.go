package handler

import (
	"net/http"

	"github.com/khmer25/shop-api/internal/constants"
	"github.com/khmer25/shop-api/internal/dto"
	"github.com/khmer25/shop-api/internal/service"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	catalog *service.CatalogService
}

func NewCategoryHandler(catalog *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

func (h *CategoryHandler) List(c *gin.Context) {
	p := constants.ParsePaginationParams(c)
	res, err := h.catalog.ListCategories(c.Request.Context(), p.Limit, p.Offset, c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	listJSON(c, p.Page, res)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}
	cat, err := h.catalog.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
