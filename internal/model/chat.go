// Package model 定义了与数据库表对应的数据结构
package model

// 聊天消息角色常量
const (
	ChatRoleUser      = "user"      // 用户消息
	ChatRoleAssistant = "assistant" // AI 助手响应
)

// ChatMessage 聊天消息
// 只存在于请求会话的临时状态中，不落库
// 这是与前端约定的展示结构，没有 gorm 标签
type ChatMessage struct {
	// ID 消息在会话内的序号
	ID int64 `json:"id"`

	// Role 消息角色，见 ChatRole* 常量
	Role string `json:"role"`

	// Content 消息内容
	Content string `json:"content"`

	// Timestamp 展示用时间戳，如 "10:30 AM"
	Timestamp string `json:"timestamp"`

	// Suggestions 追问建议，仅助手消息可能携带
	Suggestions []string `json:"suggestions,omitempty"`
}
