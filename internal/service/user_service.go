// Package service 提供业务逻辑层的实现
package service

import (
	"context"

	"medivault-server/internal/model"
	"medivault-server/internal/repository"
)

// UserService 用户服务
// 处理健康档案资料的查询和更新
type UserService struct {
	userRepo *repository.UserRepository // 用户数据访问层
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetProfile 获取用户档案
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - *model.User: 用户信息
//   - error: 用户不存在返回错误
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfileRequest 更新用户档案请求
// 只有非 nil 的字段会被更新
type UpdateProfileRequest struct {
	DisplayName      *string `json:"display_name"`      // 显示名称
	Phone            *string `json:"phone"`             // 联系电话
	Address          *string `json:"address"`           // 住址
	DateOfBirth      *string `json:"date_of_birth"`     // 出生日期
	EmergencyContact *string `json:"emergency_contact"` // 紧急联系人
	MedicalNotes     *string `json:"medical_notes"`     // 病史备注
}

// UpdateProfile 更新用户档案
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - req: 更新请求
//
// 返回:
//   - *model.User: 更新后的用户信息
//   - error: 操作错误
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*model.User, error) {
	// 1. 获取当前用户信息
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 2. 准备要更新的字段
	fields := make(map[string]interface{})
	if req.DisplayName != nil {
		fields["display_name"] = req.DisplayName
	}
	if req.Phone != nil {
		fields["phone"] = req.Phone
	}
	if req.Address != nil {
		fields["address"] = req.Address
	}
	if req.DateOfBirth != nil {
		fields["date_of_birth"] = req.DateOfBirth
	}
	if req.EmergencyContact != nil {
		fields["emergency_contact"] = req.EmergencyContact
	}
	if req.MedicalNotes != nil {
		fields["medical_notes"] = req.MedicalNotes
	}

	// 3. 如果没有要更新的字段，直接返回
	if len(fields) == 0 {
		return user, nil
	}

	// 4. 更新数据库
	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	// 5. 重新获取更新后的用户信息
	return s.userRepo.GetByID(ctx, userID)
}
