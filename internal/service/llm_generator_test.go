package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medivault-server/internal/config"
	"medivault-server/internal/model"
)

func llmConfig(baseURL string) *config.Config {
	return &config.Config{
		AI: config.AIConfig{
			Provider:    "llm",
			APIKey:      "test-key",
			BaseURL:     baseURL,
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   1024,
		},
	}
}

// TestLLMGenerator_Success 正常响应返回第一个候选的文本
func TestLLMGenerator_Success(t *testing.T) {
	var captured completionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Your last checkup was normal."}},
			},
		})
	}))
	defer server.Close()

	g := NewLLMGenerator(llmConfig(server.URL))
	records := []model.Record{
		{Title: "Checkup", UploadDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Status: model.RecordStatusNormal},
	}

	got, err := g.Generate(context.Background(), "How was my checkup?", records)
	require.NoError(t, err)

	assert.Equal(t, "Your last checkup was normal.", got)
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	// 系统提示词里嵌入了患者的上下文文本
	assert.Contains(t, captured.Messages[0].Content, "Title: Checkup")
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "How was my checkup?", captured.Messages[1].Content)
}

// TestLLMGenerator_SentinelWithoutRecords 没有记录时提示词使用哨兵文案
func TestLLMGenerator_SentinelWithoutRecords(t *testing.T) {
	var captured completionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer server.Close()

	g := NewLLMGenerator(llmConfig(server.URL))

	_, err := g.Generate(context.Background(), "hello", nil)
	require.NoError(t, err)

	assert.Contains(t, captured.Messages[0].Content, NoRecordsContext)
}

// TestLLMGenerator_MissingAPIKey 没有密钥时不发起任何请求
func TestLLMGenerator_MissingAPIKey(t *testing.T) {
	cfg := llmConfig("http://unreachable.invalid")
	cfg.AI.APIKey = ""
	g := NewLLMGenerator(cfg)

	_, err := g.Generate(context.Background(), "hello", nil)

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

// TestLLMGenerator_UpstreamFailures 非成功状态和空内容都映射为 ErrUpstreamUnavailable
func TestLLMGenerator_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"http 500",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			"api error field",
			func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]string{"message": "rate limit exceeded"},
				})
			},
		},
		{
			"empty choices",
			func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"choices": []interface{}{},
				})
			},
		},
		{
			"malformed body",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			g := NewLLMGenerator(llmConfig(server.URL))
			_, err := g.Generate(context.Background(), "hello", nil)

			assert.ErrorIs(t, err, ErrUpstreamUnavailable)
		})
	}
}

// TestNewResponseGenerator 按配置选择生成策略
func TestNewResponseGenerator(t *testing.T) {
	rules := NewResponseGenerator(&config.Config{AI: config.AIConfig{Provider: "rules"}})
	assert.IsType(t, &RuleBasedGenerator{}, rules)

	llm := NewResponseGenerator(&config.Config{AI: config.AIConfig{Provider: "llm"}})
	assert.IsType(t, &LLMGenerator{}, llm)

	// 未知策略回落到规则策略
	unknown := NewResponseGenerator(&config.Config{AI: config.AIConfig{Provider: "whatever"}})
	assert.IsType(t, &RuleBasedGenerator{}, unknown)
}
