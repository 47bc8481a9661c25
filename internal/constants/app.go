package constants

// Application Information
const (
	AppName    = "Shop API"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Cache Key Prefixes
const (
	CacheKeyPrefix     = "shop:"
	CacheKeyBanners    = CacheKeyPrefix + "banners"
	CacheKeyCategories = CacheKeyPrefix + "categories"
)

// Auth
const (
	// TokenKeyLength is the length of an issued token key in hex
	// characters (20 random bytes).
	TokenKeyLength = 40
)
