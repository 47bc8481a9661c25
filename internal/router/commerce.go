package router

import "github.com/gin-gonic/gin"

// commerceRoutes defines cart, order and order item routes. All of them
// are open: carts may be anonymous and order management belongs to the
// admin deployment boundary, not to token auth.
func (r *Router) commerceRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/carts")
	{
		carts.GET("", r.cartHandler.List)
		carts.GET("/:id", r.cartHandler.Get)
		carts.POST("", r.cartHandler.Create)
		carts.PUT("/:id", r.cartHandler.Update)
		carts.DELETE("/:id", r.cartHandler.Delete)
	}

	orders := rg.Group("/orders")
	{
		orders.GET("", r.orderHandler.List)
		orders.GET("/:id", r.orderHandler.Get)
		orders.POST("", r.orderHandler.Create)
		orders.PUT("/:id", r.orderHandler.UpdateStatus)
		orders.DELETE("/:id", r.orderHandler.Delete)
	}

	items := rg.Group("/order-items")
	{
		items.GET("", r.orderHandler.ListItems)
		items.GET("/:id", r.orderHandler.GetItem)
		items.DELETE("/:id", r.orderHandler.DeleteItem)
	}
}
