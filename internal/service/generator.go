// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"

	"medivault-server/internal/config"
	"medivault-server/internal/model"
)

// ErrUpstreamUnavailable 外部补全接口调用失败或返回空内容
// 不重试，直接让本次请求失败
var ErrUpstreamUnavailable = errors.New("AI service unavailable")

// ResponseGenerator 回复生成器
// 输入用户消息和该用户的结构化记录列表，产出回复文本
// 两个实现：
//   - RuleBasedGenerator: 内置关键词规则，纯函数，无网络调用
//   - LLMGenerator:       转发给外部大模型补全接口
//
// 具体实现由部署配置在进程启动时决定，与请求参数无关
type ResponseGenerator interface {
	Generate(ctx context.Context, message string, records []model.Record) (string, error)
}

// NewResponseGenerator 根据配置选择回复生成策略
// 参数:
//   - cfg: 应用配置，ai.provider 为 "llm" 时使用外部大模型
//
// 返回:
//   - ResponseGenerator: 生成器实例
func NewResponseGenerator(cfg *config.Config) ResponseGenerator {
	if cfg.AI.Provider == "llm" {
		return NewLLMGenerator(cfg)
	}
	return NewRuleBasedGenerator()
}
