// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"medivault-server/internal/model"
)

// MedicineRepository 药品数据访问层
type MedicineRepository struct {
	db *gorm.DB
}

// NewMedicineRepository 创建 MedicineRepository 实例
func NewMedicineRepository(db *gorm.DB) *MedicineRepository {
	return &MedicineRepository{db: db}
}

// Create 创建新药品条目
func (r *MedicineRepository) Create(ctx context.Context, medicine *model.Medicine) error {
	return r.db.WithContext(ctx).Create(medicine).Error
}

// GetByID 根据 ID 获取药品条目
// 未找到返回 nil
func (r *MedicineRepository) GetByID(ctx context.Context, id string) (*model.Medicine, error) {
	var medicine model.Medicine
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&medicine).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medicine, nil
}

// GetByUserID 获取用户的所有药品条目
// 按创建时间倒序排列
func (r *MedicineRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&medicines).Error
	return medicines, err
}

// GetActiveByUserID 获取用户正在服用的药品
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - []model.Medicine: 状态为 active 的药品列表
//   - error: 数据库错误
func (r *MedicineRepository) GetActiveByUserID(ctx context.Context, userID int64) ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.MedicineStatusActive).
		Order("created_at DESC").
		Find(&medicines).Error
	return medicines, err
}

// Update 更新药品条目
// 参数:
//   - ctx: 上下文
//   - medicine: 包含要更新字段的药品对象，必须包含 ID
//
// 返回:
//   - error: 数据库错误
func (r *MedicineRepository) Update(ctx context.Context, medicine *model.Medicine) error {
	return r.db.WithContext(ctx).Save(medicine).Error
}

// Delete 删除药品条目
func (r *MedicineRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Medicine{}).Error
}
