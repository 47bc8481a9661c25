package router

import (
	"github.com/khmer25/shop-api/config"
	"github.com/khmer25/shop-api/internal/constants"
	"github.com/khmer25/shop-api/internal/handler"
	"github.com/khmer25/shop-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	categoryHandler *handler.CategoryHandler
	supplierHandler *handler.SupplierHandler
	productHandler  *handler.ProductHandler
	bannerHandler   *handler.BannerHandler
	cartHandler     *handler.CartHandler
	orderHandler    *handler.OrderHandler
	healthHandler   *handler.HealthHandler

	authMw *middleware.AuthMiddleware
	Config *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	category *handler.CategoryHandler,
	supplier *handler.SupplierHandler,
	product *handler.ProductHandler,
	banner *handler.BannerHandler,
	cart *handler.CartHandler,
	order *handler.OrderHandler,
	health *handler.HealthHandler,

	authMw *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:     auth,
		userHandler:     user,
		categoryHandler: category,
		supplierHandler: supplier,
		productHandler:  product,
		bannerHandler:   banner,
		cartHandler:     cart,
		orderHandler:    order,
		healthHandler:   health,

		authMw: authMw,
		Config: cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.Config.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.Check)

		r.authRoutes(api)
		r.catalogRoutes(api)
		r.commerceRoutes(api)
	}

	return router
}
