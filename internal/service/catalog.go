package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/khmer25/shop-api/internal/constants"
	"github.com/khmer25/shop-api/internal/dto"
	apperrors "github.com/khmer25/shop-api/internal/errors"
	"github.com/khmer25/shop-api/internal/model"
	"github.com/khmer25/shop-api/internal/repository"
	"github.com/khmer25/shop-api/pkg/logger"
	"github.com/khmer25/shop-api/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListResult is a paginated slice of projections.
type ListResult[T any] struct {
	Items     []T
	Total     int64
	PageTotal int
}

// CatalogService covers categories, suppliers, products and banners.
// Category and banner listings are read-through cached: the storefront
// hits them on every page load and they change rarely.
type CatalogService struct {
	categories *repository.CategoryRepository
	suppliers  *repository.SupplierRepository
	products   *repository.ProductRepository
	banners    *repository.BannerRepository
	cache      *redis.Client
	cacheTTL   time.Duration
}

func NewCatalogService(
	categories *repository.CategoryRepository,
	suppliers *repository.SupplierRepository,
	products *repository.ProductRepository,
	banners *repository.BannerRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		suppliers:  suppliers,
		products:   products,
		banners:    banners,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

func pageTotal(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func mapStoreErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrRecordNotFound
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}

// --- Categories ---

func (s *CatalogService) ListCategories(ctx context.Context, limit, offset int, search string) (*ListResult[dto.CategoryResponse], error) {
	cacheKey := fmt.Sprintf("%s:l=%d:o=%d:s=%s", constants.CacheKeyCategories, limit, offset, search)

	var cached ListResult[dto.CategoryResponse]
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	categories, total, err := s.categories.List(ctx, limit, offset, search)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := &ListResult[dto.CategoryResponse]{
		Items:     make([]dto.CategoryResponse, 0, len(categories)),
		Total:     total,
		PageTotal: pageTotal(total, limit),
	}
	for i := range categories {
		res.Items = append(res.Items, toCategoryResponse(&categories[i]))
	}

	s.cacheSet(ctx, cacheKey, res)
	return res, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.invalidate(ctx, constants.CacheKeyCategories)
	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}
	if err := s.categories.Update(ctx, id, updates); err != nil {
		return nil, mapStoreErr(err)
	}
	s.invalidate(ctx, constants.CacheKeyCategories)
	return s.GetCategory(ctx, id)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	s.invalidate(ctx, constants.CacheKeyCategories)
	return nil
}

// --- Suppliers ---

func (s *CatalogService) ListSuppliers(ctx context.Context, limit, offset int, search string) (*ListResult[dto.SupplierResponse], error) {
	suppliers, total, err := s.suppliers.List(ctx, limit, offset, search)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := &ListResult[dto.SupplierResponse]{
		Items:     make([]dto.SupplierResponse, 0, len(suppliers)),
		Total:     total,
		PageTotal: pageTotal(total, limit),
	}
	for i := range suppliers {
		res.Items = append(res.Items, toSupplierResponse(&suppliers[i]))
	}
	return res, nil
}

func (s *CatalogService) GetSupplier(ctx context.Context, id uint) (*dto.SupplierResponse, error) {
	supplier, err := s.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	resp := toSupplierResponse(supplier)
	return &resp, nil
}

func (s *CatalogService) CreateSupplier(ctx context.Context, req *dto.SupplierRequest) (*dto.SupplierResponse, error) {
	supplier := &model.Supplier{
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Address:     req.Address,
	}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	resp := toSupplierResponse(supplier)
	return &resp, nil
}

func (s *CatalogService) UpdateSupplier(ctx context.Context, id uint, req *dto.SupplierRequest) (*dto.SupplierResponse, error) {
	updates := map[string]interface{}{
		"name":         req.Name,
		"contact_name": req.ContactName,
		"phone":        req.Phone,
		"address":      req.Address,
	}
	if err := s.suppliers.Update(ctx, id, updates); err != nil {
		return nil, mapStoreErr(err)
	}
	return s.GetSupplier(ctx, id)
}

func (s *CatalogService) DeleteSupplier(ctx context.Context, id uint) error {
	if err := s.suppliers.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// --- Products ---

func (s *CatalogService) ListProducts(ctx context.Context, limit, offset int, search string, categoryID *uint) (*ListResult[dto.ProductResponse], error) {
	products, total, err := s.products.List(ctx, limit, offset, search, categoryID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := &ListResult[dto.ProductResponse]{
		Items:     make([]dto.ProductResponse, 0, len(products)),
		Total:     total,
		PageTotal: pageTotal(total, limit),
	}
	for i := range products {
		res.Items = append(res.Items, toProductResponse(&products[i]))
	}
	return res, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	resp := toProductResponse(product)
	return &resp, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	images, err := marshalImages(req.Images)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput, err)
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Images:      images,
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	resp := toProductResponse(product)
	return &resp, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	images, err := marshalImages(req.Images)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput, err)
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"price_cents": req.PriceCents,
		"stock":       req.Stock,
		"images":      images,
		"category_id": req.CategoryID,
		"supplier_id": req.SupplierID,
	}
	if err := s.products.Update(ctx, id, updates); err != nil {
		return nil, mapStoreErr(err)
	}
	return s.GetProduct(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// --- Banners ---

func (s *CatalogService) ListBanners(ctx context.Context, limit, offset int, activeOnly bool) (*ListResult[dto.BannerResponse], error) {
	cacheKey := fmt.Sprintf("%s:l=%d:o=%d:a=%t", constants.CacheKeyBanners, limit, offset, activeOnly)

	var cached ListResult[dto.BannerResponse]
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	banners, total, err := s.banners.List(ctx, limit, offset, activeOnly)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := &ListResult[dto.BannerResponse]{
		Items:     make([]dto.BannerResponse, 0, len(banners)),
		Total:     total,
		PageTotal: pageTotal(total, limit),
	}
	for i := range banners {
		res.Items = append(res.Items, toBannerResponse(&banners[i]))
	}

	s.cacheSet(ctx, cacheKey, res)
	return res, nil
}

func (s *CatalogService) GetBanner(ctx context.Context, id uint) (*dto.BannerResponse, error) {
	banner, err := s.banners.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	resp := toBannerResponse(banner)
	return &resp, nil
}

func (s *CatalogService) CreateBanner(ctx context.Context, req *dto.BannerRequest) (*dto.BannerResponse, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	banner := &model.Banner{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Active:   active,
	}
	if err := s.banners.Create(ctx, banner); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.invalidate(ctx, constants.CacheKeyBanners)
	resp := toBannerResponse(banner)
	return &resp, nil
}

func (s *CatalogService) UpdateBanner(ctx context.Context, id uint, req *dto.BannerRequest) (*dto.BannerResponse, error) {
	updates := map[string]interface{}{
		"title":     req.Title,
		"image_url": req.ImageURL,
		"link_url":  req.LinkURL,
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if err := s.banners.Update(ctx, id, updates); err != nil {
		return nil, mapStoreErr(err)
	}
	s.invalidate(ctx, constants.CacheKeyBanners)
	return s.GetBanner(ctx, id)
}

func (s *CatalogService) DeleteBanner(ctx context.Context, id uint) error {
	if err := s.banners.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	s.invalidate(ctx, constants.CacheKeyBanners)
	return nil
}

// --- cache helpers ---

func (s *CatalogService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil || !s.cache.IsEnabled() {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil || !s.cache.IsEnabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		logger.GetLogger().Warn("Failed to write cache",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (s *CatalogService) invalidate(ctx context.Context, prefix string) {
	if s.cache == nil || !s.cache.IsEnabled() {
		return
	}
	if err := s.cache.DelPattern(ctx, prefix+":*"); err != nil {
		logger.GetLogger().Warn("Failed to invalidate cache",
			zap.String("prefix", prefix),
			zap.Error(err),
		)
	}
}

// --- projections ---

func toCategoryResponse(c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toSupplierResponse(s2 *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:          s2.ID,
		Name:        s2.Name,
		ContactName: s2.ContactName,
		Phone:       s2.Phone,
		Address:     s2.Address,
		CreatedAt:   s2.CreatedAt,
		UpdatedAt:   s2.UpdatedAt,
	}
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	var images []string
	if len(p.Images) > 0 {
		_ = json.Unmarshal(p.Images, &images)
	}
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		Images:      images,
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toBannerResponse(b *model.Banner) dto.BannerResponse {
	return dto.BannerResponse{
		ID:        b.ID,
		Title:     b.Title,
		ImageURL:  b.ImageURL,
		LinkURL:   b.LinkURL,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func marshalImages(images []string) (datatypes.JSON, error) {
	if len(images) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
