package middleware

import (
	"net/http"
	"strings"

	"github.com/khmer25/shop-api/internal/constants"
	"github.com/khmer25/shop-api/internal/service"
	"github.com/khmer25/shop-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware resolves bearer tokens to users. Whether a route
// requires a token is the router's decision: RequireAuth rejects
// anonymous requests, OptionalAuth lets them through unresolved.
type AuthMiddleware struct {
	tokens *service.TokenService
}

func NewAuthMiddleware(tokens *service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth validates the bearer token and sets the resolved user in
// the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := bearerToken(c)
		if !ok {
			logger.GetLogger().Warn("Missing or malformed Authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized))
			c.Abort()
			return
		}

		user, err := m.tokens.Resolve(c.Request.Context(), key)
		if err != nil {
			logger.GetLogger().Warn("Token resolution failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err),
			)
			c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized))
			c.Abort()
			return
		}

		c.Set(constants.GinKeyUser, user)
		c.Set(constants.GinKeyUserID, user.ID)

		c.Next()
	}
}

// OptionalAuth resolves a token when one is presented but never rejects
// the request. Anonymous access stays anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		user, err := m.tokens.Resolve(c.Request.Context(), key)
		if err == nil {
			c.Set(constants.GinKeyUser, user)
			c.Set(constants.GinKeyUserID, user.ID)
		}

		c.Next()
	}
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
