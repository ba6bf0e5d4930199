package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPasswordHashing bcrypt 哈希可校验，错误密码被拒绝
func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword("s3cret-password", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
}

// TestNewID 生成标准长度的唯一标识
func TestNewID(t *testing.T) {
	first := NewID()
	second := NewID()

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}

// TestHashToken 同一 Token 的哈希稳定，输出为 64 位十六进制
func TestHashToken(t *testing.T) {
	h1 := HashToken("some.jwt.token")
	h2 := HashToken("some.jwt.token")

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashToken("another.jwt.token"))
}

// TestStringOr nil 指针和空串都回落到默认值
func TestStringOr(t *testing.T) {
	assert.Equal(t, "fallback", StringOr(nil, "fallback"))
	assert.Equal(t, "fallback", StringOr(StringPtr(""), "fallback"))
	assert.Equal(t, "value", StringOr(StringPtr("value"), "fallback"))
}
