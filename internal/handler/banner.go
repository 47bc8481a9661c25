package handler

import (
	"net/http"

	"github.com/khmer25/shop-api/internal/constants"
	"github.com/khmer25/shop-api/internal/dto"
	"github.com/khmer25/shop-api/internal/service"
	"github.com/gin-gonic/gin"
)

type BannerHandler struct {
	catalog *service.CatalogService
}

func NewBannerHandler(catalog *service.CatalogService) *BannerHandler {
	return &BannerHandler{catalog: catalog}
}

func (h *BannerHandler) List(c *gin.Context) {
	p := constants.ParsePaginationParams(c)
	activeOnly := c.DefaultQuery("active", "false") == "true"
	res, err := h.catalog.ListBanners(c.Request.Context(), p.Limit, p.Offset, activeOnly)
	if err != nil {
		fail(c, err)
		return
	}
	listJSON(c, p.Page, res)
}

func (h *BannerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.catalog.GetBanner(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BannerHandler) Create(c *gin.Context) {
	var req dto.BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}
	b, err := h.catalog.CreateBanner(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BannerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}
	b, err := h.catalog.UpdateBanner(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BannerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteBanner(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
