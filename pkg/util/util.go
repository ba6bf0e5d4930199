// Package util 提供通用工具函数
package util

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword 使用 bcrypt 哈希密码
// bcrypt 是一种专门为密码哈希设计的算法，自动添加盐值
// 参数:
//   - password: 明文密码
//
// 返回:
//   - string: 密码哈希值
//   - error: 哈希错误
func HashPassword(password string) (string, error) {
	// bcrypt.DefaultCost 是默认的计算成本（10）
	// 成本越高，计算越慢，安全性越高
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword 验证密码是否匹配
// 参数:
//   - password: 用户输入的明文密码
//   - hash: 数据库中存储的哈希值
//
// 返回:
//   - bool: 是否匹配
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// NewID 生成 UUID v4 字符串
// 用作记录和药品条目的主键
// 返回:
//   - string: UUID 字符串，格式 xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func NewID() string {
	return uuid.New().String()
}

// HashToken 计算 Token 的 SHA-256 哈希
// 黑名单中只存哈希值，不存原始 Token
// 参数:
//   - token: JWT Token 字符串
//
// 返回:
//   - string: 十六进制哈希值
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// StringPtr 返回字符串的指针
// 用于可选字段的赋值
// 参数:
//   - s: 字符串
//
// 返回:
//   - *string: 字符串指针
func StringPtr(s string) *string {
	return &s
}

// StringOr 解引用可选字符串，为 nil 或空时返回 fallback
// 上下文装配时用于 "Not specified" 之类的占位文案
// 参数:
//   - s: 可选字符串
//   - fallback: 缺省文案
//
// 返回:
//   - string: 字段值或缺省文案
func StringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
