package router

import (
	"time"

	"github.com/khmer25/shop-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authRoutes defines registration, login and profile routes. Only the
// credential endpoints are rate limited; profile reads stay unthrottled.
func (r *Router) authRoutes(rg *gin.RouterGroup) {
	limited := rg.Group("")
	limited.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))
	{
		limited.POST("/register", r.authHandler.Register)
		limited.POST("/login", r.authHandler.Login)
	}

	rg.GET("/user", r.userHandler.GetUserInfo)
	rg.GET("/user/:id", r.userHandler.GetUserInfo)
}
