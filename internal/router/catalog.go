package router

import "github.com/gin-gonic/gin"

// catalogRoutes defines category, supplier, product and banner routes.
// This is an administrative backend: only products carry the
// public-read / token-write split, every other surface is open.
func (r *Router) catalogRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", r.categoryHandler.List)
		categories.GET("/:id", r.categoryHandler.Get)
		categories.POST("", r.categoryHandler.Create)
		categories.PUT("/:id", r.categoryHandler.Update)
		categories.DELETE("/:id", r.categoryHandler.Delete)
	}

	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("", r.supplierHandler.List)
		suppliers.GET("/:id", r.supplierHandler.Get)
		suppliers.POST("", r.supplierHandler.Create)
		suppliers.PUT("/:id", r.supplierHandler.Update)
		suppliers.DELETE("/:id", r.supplierHandler.Delete)
	}

	products := rg.Group("/products")
	{
		products.GET("", r.productHandler.List)
		products.GET("/:id", r.productHandler.Get)

		protected := products.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.POST("", r.productHandler.Create)
			protected.PUT("/:id", r.productHandler.Update)
			protected.DELETE("/:id", r.productHandler.Delete)
		}
	}

	banners := rg.Group("/banners")
	{
		banners.GET("", r.bannerHandler.List)
		banners.GET("/:id", r.bannerHandler.Get)
		banners.POST("", r.bannerHandler.Create)
		banners.PUT("/:id", r.bannerHandler.Update)
		banners.DELETE("/:id", r.bannerHandler.Delete)
	}
}
