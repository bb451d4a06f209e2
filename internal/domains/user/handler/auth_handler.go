package handler

import (
	"net/http"

	"catalog-backend/internal/domains/user/model"
	"catalog-backend/internal/domains/user/service"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service service.ServiceInterface
}

func NewAuthHandler(service service.ServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// ObtainToken - POST /api-token-auth/
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(apperror.CodeInvalidInput, "Malformed request body", nil))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, token)
}
