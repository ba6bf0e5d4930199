// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"medivault-server/internal/service"
	"medivault-server/pkg/response"
)

// AuthHandler 认证请求处理器
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register 用户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrEmailExists:
			response.UserExists(c)
		default:
			response.InternalError(c, "failed to register")
		}
		return
	}

	response.Created(c, result)
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.UserNotFound(c)
		case service.ErrPasswordWrong:
			response.PasswordWrong(c)
		case service.ErrUserDisabled:
			response.Forbidden(c, "account disabled")
		default:
			response.InternalError(c, "failed to login")
		}
		return
	}

	response.Success(c, result)
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken 刷新 Token
// 旧的 Refresh Token 立即作废
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case service.ErrInvalidToken:
			response.Unauthorized(c, "invalid refresh token")
		case service.ErrUserNotFound:
			response.UserNotFound(c)
		case service.ErrUserDisabled:
			response.Forbidden(c, "account disabled")
		default:
			response.InternalError(c, "failed to refresh token")
		}
		return
	}

	response.Success(c, result)
}

// LogoutRequest 登出请求
// refresh_token 可选，携带时一并作废
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout 用户登出
// 当前 Access Token 和 Refresh Token 都加入黑名单
func (h *AuthHandler) Logout(c *gin.Context) {
	token, exists := c.Get("access_token")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	// 请求体可省略
	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.authService.Logout(c.Request.Context(), token.(string), req.RefreshToken); err != nil {
		response.InternalError(c, "failed to logout")
		return
	}

	response.Success(c, nil)
}
