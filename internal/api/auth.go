package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/types"
)

// Auth endpoint messages. Every failure is reported with status 400.
const (
	msgCredentialsRequired = "Email and password required"
	msgEmailExists         = "Email already exists"
	msgInvalidCredentials  = "Invalid credentials"
	msgAuthFailed          = "Request failed"
)

// AuthHandler serves the register and login endpoints.
type AuthHandler struct {
	authService service.IAuthService
	log         *zap.Logger
}

func NewAuthHandler(authService service.IAuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgCredentialsRequired)
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		respondError(c, http.StatusBadRequest, h.authMessage(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgCredentialsRequired)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusBadRequest, h.authMessage(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) authMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		return msgCredentialsRequired
	case errors.Is(err, service.ErrEmailExists):
		return msgEmailExists
	case errors.Is(err, service.ErrInvalidCredentials):
		return msgInvalidCredentials
	default:
		h.log.Error("auth request failed", zap.Error(err))
		return msgAuthFailed
	}
}
