package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars!!"

// TestJWT_AccessTokenRoundTrip 生成后可以验证并取回声明
func TestJWT_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken(42, "patient@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "patient@example.com", claims.Email)
	assert.Equal(t, "access", claims.Subject)
	assert.Equal(t, "medivault", claims.Issuer)
}

// TestJWT_RefreshTokenSubject Refresh Token 的主题标识为 refresh
func TestJWT_RefreshTokenSubject(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, 24*time.Hour)

	token, err := svc.GenerateRefreshToken(42, "patient@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.Subject)
}

// TestJWT_WrongSecret 用其他密钥签名的 Token 无效
func TestJWT_WrongSecret(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, 24*time.Hour)
	other := NewJWTService("another-secret-key-32-chars-long!!!", time.Hour, 24*time.Hour)

	token, err := other.GenerateAccessToken(42, "patient@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestJWT_Expired 过期 Token 返回专门的错误
func TestJWT_Expired(t *testing.T) {
	svc := NewJWTService(testSecret, -time.Minute, 24*time.Hour)

	token, err := svc.GenerateAccessToken(42, "patient@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

// TestJWT_Garbage 非法字符串无效
func TestJWT_Garbage(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, 24*time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
