package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medivault-server/internal/middleware"
	"medivault-server/internal/model"
	"medivault-server/internal/service"
)

// fakeRecordStore 内存记录存储
type fakeRecordStore struct {
	records []model.Record
	err     error
}

func (s *fakeRecordStore) GetByUserID(_ context.Context, _ int64) ([]model.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

// newChatRouter 组装带 CORS 和模拟认证的测试路由
// 模拟认证替代 JWT 中间件，直接注入已认证的用户身份
func newChatRouter(store *fakeRecordStore, authedUserID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	chatService := service.NewChatService(store, service.NewRuleBasedGenerator())
	h := NewChatHandler(chatService)

	router := gin.New()
	router.Use(middleware.CORSMiddleware())

	chat := router.Group("/api/v1/chat")
	chat.Use(func(c *gin.Context) {
		c.Set("user_id", authedUserID)
		c.Next()
	})
	chat.POST("", h.Chat)
	chat.GET("/intro", h.Intro)

	return router
}

func postChat(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestChatHandler_Preflight 预检请求返回空的成功响应和约定的 CORS 头
func TestChatHandler_Preflight(t *testing.T) {
	router := newChatRouter(&fakeRecordStore{}, 7)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/chat", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

// TestChatHandler_Success 正常请求返回 {response, context} 信封
func TestChatHandler_Success(t *testing.T) {
	store := &fakeRecordStore{
		records: []model.Record{
			{Title: "Rx", UploadDate: time.Now(), Status: model.RecordStatusActive, MedicationNames: []string{"Aspirin 75mg"}},
			{Title: "Lab", UploadDate: time.Now(), Status: model.RecordStatusNormal},
		},
	}
	router := newChatRouter(store, 7)

	w := postChat(router, `{"message":"hello","userId":"7"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "2 record(s) available")
	assert.Equal(t, "Based on 2 medical records", resp.Context)
}

// TestChatHandler_Validation 校验失败返回 400 和固定兜底文案
func TestChatHandler_Validation(t *testing.T) {
	router := newChatRouter(&fakeRecordStore{}, 7)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing message", `{"userId":"7"}`},
		{"blank message", `{"message":"   ","userId":"7"}`},
		{"missing userId", `{"message":"hello"}`},
		{"non-numeric userId", `{"message":"hello","userId":"abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postChat(router, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp ChatErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, chatFallback, resp.Fallback)
		})
	}
}

// TestChatHandler_UserMismatch 请求体身份与认证身份不符返回 403
func TestChatHandler_UserMismatch(t *testing.T) {
	router := newChatRouter(&fakeRecordStore{}, 7)

	w := postChat(router, `{"message":"hello","userId":"8"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp ChatErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, chatFallback, resp.Fallback)
}

// TestChatHandler_StoreFailure 存储失败返回 500 和固定兜底文案
func TestChatHandler_StoreFailure(t *testing.T) {
	store := &fakeRecordStore{err: errors.New("connection refused")}
	router := newChatRouter(store, 7)

	w := postChat(router, `{"message":"hello","userId":"7"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ChatErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "failed to fetch user prescriptions")
	assert.Equal(t, chatFallback, resp.Fallback)
}

// TestChatHandler_Intro 开场消息走统一响应信封
func TestChatHandler_Intro(t *testing.T) {
	router := newChatRouter(&fakeRecordStore{}, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/intro", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Code int `json:"code"`
		Data struct {
			Role        string   `json:"role"`
			Content     string   `json:"content"`
			Suggestions []string `json:"suggestions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 0, envelope.Code)
	assert.Equal(t, model.ChatRoleAssistant, envelope.Data.Role)
	assert.Len(t, envelope.Data.Suggestions, 4)
}
