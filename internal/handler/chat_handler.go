// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"medivault-server/internal/service"
	"medivault-server/pkg/response"
)

// chatFallback 失败时的固定兜底文案
// 与错误原因无关，所有失败路径都返回同一段文案
const chatFallback = "I'm sorry, I'm having trouble accessing your medical data right now. Please try asking your question again, or contact your healthcare provider for medical advice."

// ChatHandler AI 问答请求处理器
// 这个接口的响应信封是与前端单独约定的：
// 成功 {response, context}，失败 {error, fallback}
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler 创建 ChatHandler 实例
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest 问答请求体
type ChatRequest struct {
	Message string `json:"message"` // 用户的自由文本提问
	UserID  string `json:"userId"`  // 用户标识，必须与认证身份一致
}

// ChatResponse 问答成功响应
type ChatResponse struct {
	Response string `json:"response"` // 回复文本
	Context  string `json:"context"`  // 来源说明，如 "Based on 3 medical records"
}

// ChatErrorResponse 问答失败响应
type ChatErrorResponse struct {
	Error    string `json:"error"`    // 诊断信息
	Fallback string `json:"fallback"` // 固定兜底文案
}

// Chat 处理一轮 AI 问答
// 校验 → 读取记录 → 生成回复，任何一步失败都短路到错误信封
// 校验失败返回 400，身份不符返回 403，存储/上游失败返回 500
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		h.chatError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.chatError(c, http.StatusBadRequest, service.ErrInvalidChatRequest)
		return
	}

	// message 和 userId 都必填，空白视为缺失
	// 校验失败时不发起任何存储或上游调用
	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.UserID) == "" {
		h.chatError(c, http.StatusBadRequest, service.ErrInvalidChatRequest)
		return
	}

	// 请求体中的 userId 必须与 Token 中的身份一致
	// 记录读取永远使用认证身份，不信任请求体
	bodyUserID, err := strconv.ParseInt(req.UserID, 10, 64)
	if err != nil {
		h.chatError(c, http.StatusBadRequest, service.ErrInvalidChatRequest)
		return
	}
	if bodyUserID != userID.(int64) {
		h.chatError(c, http.StatusForbidden, errors.New("userId does not match authenticated user"))
		return
	}

	result, err := h.chatService.Chat(c.Request.Context(), userID.(int64), req.Message)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidChatRequest) {
			status = http.StatusBadRequest
		}
		h.chatError(c, status, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		Response: result.Response,
		Context:  fmt.Sprintf("Based on %d medical records", result.RecordCount),
	})
}

// Intro 返回会话开场消息和追问建议
// 内容只存在于本次响应中，不落库
func (h *ChatHandler) Intro(c *gin.Context) {
	response.Success(c, h.chatService.Intro())
}

// chatError 输出失败信封并记录诊断日志
func (h *ChatHandler) chatError(c *gin.Context, status int, err error) {
	log.Printf("Error in medical chat handler: %v", err)
	c.JSON(status, ChatErrorResponse{
		Error:    err.Error(),
		Fallback: chatFallback,
	})
}
