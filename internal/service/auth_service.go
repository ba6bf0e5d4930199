// Package service 提供业务逻辑层的实现
// 服务层封装具体的业务逻辑，协调 Repository 和 Cache
package service

import (
	"context"
	"errors"

	"medivault-server/internal/cache"
	"medivault-server/internal/model"
	"medivault-server/internal/repository"
	"medivault-server/pkg/jwt"
	"medivault-server/pkg/util"
)

// 定义业务错误
var (
	ErrEmailExists   = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrPasswordWrong = errors.New("wrong password")
	ErrUserDisabled  = errors.New("account disabled")
	ErrInvalidToken  = errors.New("invalid refresh token")
)

// AuthService 认证服务
// 处理用户注册、登录、登出和 Token 刷新
type AuthService struct {
	userRepo   *repository.UserRepository // 用户数据访问层
	cache      *cache.RedisCache          // Redis 缓存
	jwtService *jwt.JWTService            // JWT 服务
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	userRepo *repository.UserRepository,
	redisCache *cache.RedisCache,
	jwtService *jwt.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		cache:      redisCache,
		jwtService: jwtService,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`           // 登录邮箱
	Password    string `json:"password" binding:"required,min=6"`        // 密码
	DisplayName string `json:"display_name" binding:"omitempty,max=100"` // 显示名称（可选）
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// Register 用户注册
// 参数:
//   - ctx: 上下文
//   - req: 注册请求
//
// 返回:
//   - *RegisterResponse: 注册成功返回用户信息
//   - error: 注册失败返回错误（邮箱已存在等）
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	// 1. 检查邮箱是否已被注册
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 2. 对密码进行哈希
	// 使用 bcrypt 算法，自动添加盐值
	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// 3. 创建用户
	user := &model.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Status:       1, // 正常状态
	}

	if req.DisplayName != "" {
		user.DisplayName = &req.DisplayName
	}

	// 保存到数据库
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &RegisterResponse{
		UserID: user.ID,
		Email:  user.Email,
	}, nil
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // 登录邮箱
	Password string `json:"password" binding:"required"` // 密码
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`  // 访问令牌
	RefreshToken string      `json:"refresh_token"` // 刷新令牌
	ExpiresIn    int64       `json:"expires_in"`    // 过期时间（秒）
	User         *model.User `json:"user"`          // 用户信息
}

// Login 用户登录
// 参数:
//   - ctx: 上下文
//   - req: 登录请求
//
// 返回:
//   - *LoginResponse: 登录成功返回 Token 和用户信息
//   - error: 登录失败返回错误（用户不存在/密码错误/账号禁用）
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	// 1. 根据邮箱查找用户
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 2. 检查账号状态
	if user.Status != 1 {
		return nil, ErrUserDisabled
	}

	// 3. 验证密码
	if !util.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrPasswordWrong
	}

	// 4. 生成 Token 对
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtService.AccessExpire().Seconds()),
		User:         user,
	}, nil
}

// RefreshToken 用 Refresh Token 换取新的 Token 对
// 参数:
//   - ctx: 上下文
//   - refreshToken: 登录时下发的 Refresh Token
//
// 返回:
//   - *LoginResponse: 新的 Token 对和用户信息
//   - error: Token 无效/已拉黑/用户不存在
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	// 1. 验证 Refresh Token
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	// 2. 检查黑名单（登出后的 Refresh Token 不能再用）
	if s.cache.IsTokenBlacklisted(ctx, util.HashToken(refreshToken)) {
		return nil, ErrInvalidToken
	}

	// 3. 确认用户仍然存在且可用
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Status != 1 {
		return nil, ErrUserDisabled
	}

	// 4. 旧的 Refresh Token 立即作废（轮换）
	if err := s.cache.BlacklistToken(ctx, util.HashToken(refreshToken), claims.ExpiresAt.Time); err != nil {
		return nil, err
	}

	// 5. 下发新的 Token 对
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    int64(s.jwtService.AccessExpire().Seconds()),
		User:         user,
	}, nil
}

// Logout 用户登出
// 把当前 Access Token 和（如果携带）Refresh Token 都加入黑名单，立即失效
// 参数:
//   - ctx: 上下文
//   - accessToken: 当前请求携带的 Access Token
//   - refreshToken: 登录时下发的 Refresh Token，可为空
//
// 返回:
//   - error: Redis 操作错误
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if claims, err := s.jwtService.ValidateToken(accessToken); err == nil {
		if err := s.cache.BlacklistToken(ctx, util.HashToken(accessToken), claims.ExpiresAt.Time); err != nil {
			return err
		}
	}

	// 无效的 Token 无需拉黑，登出视为成功
	if refreshToken != "" {
		if claims, err := s.jwtService.ValidateToken(refreshToken); err == nil {
			return s.cache.BlacklistToken(ctx, util.HashToken(refreshToken), claims.ExpiresAt.Time)
		}
	}

	return nil
}

// ChangePassword 修改密码
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - oldPassword: 旧密码
//   - newPassword: 新密码
//
// 返回:
//   - error: 旧密码错误或数据库错误
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !util.CheckPassword(oldPassword, user.PasswordHash) {
		return ErrPasswordWrong
	}

	newHash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"password_hash": newHash,
	})
}
