package handler

import (
	"net/http"
	"strconv"

	"github.com/khmer25/shop-api/internal/constants"
	apperrors "github.com/khmer25/shop-api/internal/errors"
	"github.com/khmer25/shop-api/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUserInfo fetches a user's public projection by id or phone.
//
// Accepts the identifier as a path segment (/user/:id), a query
// parameter (?id=), or a phone query parameter (?phone=). Id wins when
// both are given. The endpoint is deliberately open: only public
// projection fields ever leave it.
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		idStr = c.Param("id")
	}
	phone := c.Query("phone")

	if idStr == "" && phone == "" {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Provide 'id' or 'phone' to fetch user info."))
		return
	}

	if idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid user ID."))
			return
		}

		user, err := h.userService.GetByID(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	user, err := h.userService.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}
	c.JSON(http.StatusOK, user)
}
