// Package service 提供业务逻辑层的实现
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"medivault-server/internal/config"
	"medivault-server/internal/model"
)

// LLMGenerator 外部大模型回复生成器
// 把上下文文本嵌入固定的系统提示词后，转发给 OpenAI 兼容的
// chat completions 接口，原样返回第一个候选的文本
type LLMGenerator struct {
	config *config.Config
	client *http.Client
}

// NewLLMGenerator 创建 LLMGenerator 实例
func NewLLMGenerator(cfg *config.Config) *LLMGenerator {
	return &LLMGenerator{
		config: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second, // 设置超时
		},
	}
}

// completionMessage 补全接口的消息结构
type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest 补全接口请求结构
type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

// completionResponse 补全接口响应结构
type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate 调用外部补全接口生成回复
// 失败不重试，直接返回 ErrUpstreamUnavailable
// 参数:
//   - ctx: 上下文
//   - message: 用户的自由文本提问
//   - records: 该用户的记录列表，序列化后嵌入系统提示词
//
// 返回:
//   - string: 模型回复文本
//   - error: 接口返回非成功状态或空内容时返回错误
func (g *LLMGenerator) Generate(ctx context.Context, message string, records []model.Record) (string, error) {
	if g.config.AI.APIKey == "" {
		return "", fmt.Errorf("%w: missing API key", ErrUpstreamUnavailable)
	}

	// 1. 构建系统提示词：患者数据 + 行为约束
	systemPrompt := "You are a medical records assistant for a patient-facing health app.\n" +
		"Answer the patient's question using their stored records below.\n\n" +
		FormatMedicalContext(records) + "\n\n" +
		"Rules:\n" +
		"1. Always recommend consulting a qualified healthcare professional.\n" +
		"2. Never provide a diagnosis.\n" +
		"3. Be empathetic and clear.\n" +
		"4. Reference the patient's actual records when relevant.\n"

	// 2. 构造请求 Body
	reqBody := completionRequest{
		Model: g.config.AI.Model,
		Messages: []completionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		Temperature: g.config.AI.Temperature,
		MaxTokens:   g.config.AI.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	// 3. 发送 HTTP 请求
	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.config.AI.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.config.AI.APIKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("AI service returned status %d: %s", resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	// 4. 解析响应，只取第一个候选
	var compResp completionResponse
	if err := json.Unmarshal(bodyBytes, &compResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if compResp.Error.Message != "" {
		return "", fmt.Errorf("%w: %s", ErrUpstreamUnavailable, compResp.Error.Message)
	}

	if len(compResp.Choices) == 0 || compResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUpstreamUnavailable)
	}

	return compResp.Choices[0].Message.Content, nil
}
