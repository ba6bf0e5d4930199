// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"medivault-server/internal/service"
	"medivault-server/pkg/response"
)

// UserHandler 用户档案请求处理器
type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// GetProfile 获取当前用户的健康档案
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID.(int64))
	if err != nil {
		if err == service.ErrUserNotFound {
			response.UserNotFound(c)
		} else {
			response.InternalError(c, "failed to load profile")
		}
		return
	}

	response.Success(c, user)
}

// UpdateProfile 更新当前用户的健康档案
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID.(int64), &req)
	if err != nil {
		if err == service.ErrUserNotFound {
			response.UserNotFound(c)
		} else {
			response.InternalError(c, "failed to update profile")
		}
		return
	}

	response.Success(c, user)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`       // 旧密码
	NewPassword string `json:"new_password" binding:"required,min=6"` // 新密码
}

// ChangePassword 修改密码
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), userID.(int64), req.OldPassword, req.NewPassword)
	if err != nil {
		switch err {
		case service.ErrPasswordWrong:
			response.PasswordWrong(c)
		case service.ErrUserNotFound:
			response.UserNotFound(c)
		default:
			response.InternalError(c, "failed to change password")
		}
		return
	}

	response.Success(c, nil)
}
