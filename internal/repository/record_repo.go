// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"medivault-server/internal/model"
)

// RecordRepository 医疗记录数据访问层
// 负责记录相关的所有数据库操作
// 所有按用户查询都在这里带上 user_id 过滤条件，
// 上层永远拿不到别的用户的记录
type RecordRepository struct {
	db *gorm.DB
}

// NewRecordRepository 创建 RecordRepository 实例
func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Create 创建新记录
// 参数:
//   - ctx: 上下文
//   - record: 记录对象，时间字段会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *RecordRepository) Create(ctx context.Context, record *model.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByID 根据 ID 获取记录
// 参数:
//   - ctx: 上下文
//   - id: 记录ID
//
// 返回:
//   - *model.Record: 记录对象，未找到返回 nil
//   - error: 数据库错误
func (r *RecordRepository) GetByID(ctx context.Context, id string) (*model.Record, error) {
	var record model.Record
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetByUserID 获取用户的所有记录
// 按创建时间倒序排列（最新的在前），AI 助手的上下文装配依赖这个顺序
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - []model.Record: 记录列表
//   - error: 数据库错误
func (r *RecordRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Record, error) {
	var records []model.Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// CountByUserID 统计用户的记录数量
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - int64: 记录数量
//   - error: 数据库错误
func (r *RecordRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Record{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// UpdateStatus 更新记录状态
// 记录上传后只有状态可以修改
// 参数:
//   - ctx: 上下文
//   - id: 记录ID
//   - status: 新状态
//
// 返回:
//   - error: 数据库错误
func (r *RecordRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Record{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete 删除记录
// 只在用户显式操作时调用
// 参数:
//   - ctx: 上下文
//   - id: 记录ID
//
// 返回:
//   - error: 数据库错误
func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Record{}).Error
}
