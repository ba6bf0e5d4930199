// Package service 提供业务逻辑层的实现
// 服务层封装具体的业务逻辑，协调 Repository 和生成器
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"medivault-server/internal/model"
)

// 定义业务错误
var (
	// ErrInvalidChatRequest 请求缺少必填字段，没有发起任何 I/O
	ErrInvalidChatRequest = errors.New("message and userId are required")
	// ErrStoreUnavailable 记录读取失败，不重试
	ErrStoreUnavailable = errors.New("failed to fetch user prescriptions")
)

// RecordStore 聊天服务需要的数据访问能力
// RecordRepository 实现了这个接口；测试中可以用内存实现替换
type RecordStore interface {
	GetByUserID(ctx context.Context, userID int64) ([]model.Record, error)
}

// ChatService AI 问答服务
// 编排顺序固定：读取记录 → 装配上下文 → 生成回复
// 每个请求独立无状态处理，读取永远是针对当前用户的新查询
type ChatService struct {
	records   RecordStore       // 记录数据访问
	generator ResponseGenerator // 回复生成器，启动时按配置选定
}

// NewChatService 创建 ChatService 实例
func NewChatService(records RecordStore, generator ResponseGenerator) *ChatService {
	return &ChatService{
		records:   records,
		generator: generator,
	}
}

// ChatResult 问答结果
type ChatResult struct {
	Response    string // 回复文本
	RecordCount int    // 本次消费的记录数量
}

// Chat 处理一轮问答
// 任何一步失败都直接终止，不存在部分成功
// 参数:
//   - ctx: 上下文
//   - userID: 发起提问的用户ID（来自认证信息，不是请求体）
//   - message: 用户的自由文本提问
//
// 返回:
//   - *ChatResult: 回复文本和记录数量
//   - error: ErrInvalidChatRequest / ErrStoreUnavailable / ErrUpstreamUnavailable
func (s *ChatService) Chat(ctx context.Context, userID int64, message string) (*ChatResult, error) {
	// 1. 校验输入，空白消息视为缺失
	if strings.TrimSpace(message) == "" || userID <= 0 {
		return nil, ErrInvalidChatRequest
	}

	// 2. 读取该用户的记录，单次尽力而为，失败不重试
	records, err := s.records.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("Error fetching records for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	log.Printf("Found %d records for user %d", len(records), userID)

	// 3. 生成回复
	reply, err := s.generator.Generate(ctx, message, records)
	if err != nil {
		return nil, err
	}

	return &ChatResult{
		Response:    reply,
		RecordCount: len(records),
	}, nil
}

// Intro 返回会话开场消息
// 纯展示内容，只存在于本次响应中，不落库
func (s *ChatService) Intro() model.ChatMessage {
	return model.ChatMessage{
		ID:        1,
		Role:      model.ChatRoleAssistant,
		Content:   "Hello! 👋 I'm your medical AI assistant. I can help you with information about your medical history, medicines, and health records. What would you like to know today?",
		Timestamp: time.Now().Format("3:04 PM"),
		Suggestions: []string{
			"What medicines did I take last month?",
			"Show my recent medical reports",
			"Any medicine interactions to worry about?",
			"When was my last cardiology checkup?",
		},
	}
}
