package constants

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Standard Response Field Keys
const (
	// Pagination fields
	ResponseFieldTotal     = "total"
	ResponseFieldPage      = "page"
	ResponseFieldPageTotal = "page_total"
	ResponseFieldData      = "data"

	// Common response fields
	ResponseFieldMessage = "message"
	ResponseFieldDetail  = "detail"
	ResponseFieldErrors  = "errors"
)

// PaginationParams holds parsed page/limit values and the derived offset.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePaginationParams parses page and limit query parameters with
// clamping to sane bounds.
func ParsePaginationParams(c *gin.Context) PaginationParams {
	pageStr := c.DefaultQuery(QueryParamPage, DefaultPage)
	limitStr := c.DefaultQuery(QueryParamLimit, DefaultLimit)

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < MinPage {
		page = MinPage
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Response Format Functions
func BuildListResponse(total int64, page int, pageTotal int, data any) map[string]any {
	return map[string]any{
		ResponseFieldTotal:     total,
		ResponseFieldPage:      page,
		ResponseFieldPageTotal: pageTotal,
		ResponseFieldData:      data,
	}
}

// BuildErrorResponse renders a caller-correctable failure. The body shape
// mirrors what API clients already consume: a top-level detail string.
func BuildErrorResponse(detail string) map[string]any {
	return map[string]any{
		ResponseFieldDetail: detail,
	}
}

// BuildValidationErrorResponse renders field-level validation errors.
func BuildValidationErrorResponse(fields map[string]string) map[string]any {
	return map[string]any{
		ResponseFieldErrors: fields,
	}
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
	}
}
