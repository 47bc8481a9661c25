package handler

import (
	"net/http"
	"strconv"

	"github.com/khmer25/shop-api/internal/constants"
	apperrors "github.com/khmer25/shop-api/internal/errors"
	"github.com/khmer25/shop-api/internal/service"
	"github.com/khmer25/shop-api/pkg/validation"
	"github.com/gin-gonic/gin"
)

// pathID parses the :id route parameter, writing the 400 itself on
// failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid ID."))
		return 0, false
	}
	return uint(id), true
}

// queryUint parses an optional unsigned query parameter.
func queryUint(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

// fail writes a domain error as a JSON response.
func fail(c *gin.Context, err error) {
	c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
}

// failValidation writes a binding error as a field-level 400.
func failValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, constants.BuildValidationErrorResponse(validation.FieldErrors(err)))
}

// listJSON writes a paginated list response.
func listJSON[T any](c *gin.Context, page int, res *service.ListResult[T]) {
	c.JSON(http.StatusOK, constants.BuildListResponse(res.Total, page, res.PageTotal, res.Items))
}
