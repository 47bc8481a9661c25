package handler

import (
	"errors"
	"net/http"

	"github.com/khmer25/shop-api/internal/constants"
	"github.com/khmer25/shop-api/internal/dto"
	apperrors "github.com/khmer25/shop-api/internal/errors"
	"github.com/khmer25/shop-api/internal/service"
	"github.com/khmer25/shop-api/pkg/logger"
	"github.com/khmer25/shop-api/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register creates a new user and hands back the first token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildValidationErrorResponse(validation.FieldErrors(err)))
		return
	}

	response, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPhoneExists) {
			c.JSON(http.StatusBadRequest, constants.BuildValidationErrorResponse(map[string]string{
				"phone": apperrors.ErrPhoneExists.Message,
			}))
			return
		}
		status := apperrors.ToHTTPStatus(err)
		logger.GetLogger().Error("Registration failed",
			zap.String("phone", req.Phone),
			zap.Int("http_status", status),
			zap.Error(err),
		)
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login authenticates by phone and password. Every credential failure
// answers with the same body, so the endpoint never confirms whether a
// phone number is registered.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrMissingCredentials.Message))
		return
	}

	response, err := h.userService.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, response)
}
