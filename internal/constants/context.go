package constants

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// Context Keys for request tracking and identity resolution
const (
	CtxKeyRequestID ContextKey = "request_id"
	CtxKeyUserID    ContextKey = "user_id"
	CtxKeyClientIP  ContextKey = "client_ip"
)

// Gin context keys set by the auth middleware for downstream handlers.
const (
	GinKeyUser   = "auth_user"
	GinKeyUserID = "user_id"
)
