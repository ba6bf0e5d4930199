// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"time"

	"medivault-server/internal/model"
	"medivault-server/internal/repository"
	"medivault-server/pkg/util"
)

// 记录服务相关错误
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNoPermission   = errors.New("no permission")
)

// RecordService 医疗记录服务
// 处理记录的上传登记、查询、状态修改和删除
// 所有操作都校验记录归属，用户只能操作自己的记录
type RecordService struct {
	recordRepo *repository.RecordRepository // 记录数据访问层
}

// NewRecordService 创建 RecordService 实例
func NewRecordService(recordRepo *repository.RecordRepository) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
	}
}

// CreateRecordRequest 登记记录请求
// 文件本体已经由前端直传到对象存储，这里只登记元数据
type CreateRecordRequest struct {
	Title           string   `json:"title" binding:"required,max=200"` // 记录标题
	DoctorName      string   `json:"doctor_name"`                      // 开具医生（可选）
	Hospital        string   `json:"hospital"`                         // 就诊医院（可选）
	Category        string   `json:"category"`                         // 分类（可选）
	Description     string   `json:"description"`                      // 描述（可选）
	Status          string   `json:"status"`                           // 状态，缺省为 active
	MedicationNames []string `json:"medication_names"`                 // 药品名称列表（可选）
	FileURL         string   `json:"file_url" binding:"required"`      // 文件存储地址
	FileName        string   `json:"file_name" binding:"required"`     // 原始文件名
	FileType        string   `json:"file_type"`                        // MIME 类型
}

// CreateRecord 登记一条新记录
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - req: 登记请求
//
// 返回:
//   - *model.Record: 创建的记录
//   - error: 数据库错误
func (s *RecordService) CreateRecord(ctx context.Context, userID int64, req *CreateRecordRequest) (*model.Record, error) {
	status := req.Status
	if status == "" {
		status = model.RecordStatusActive
	}

	record := &model.Record{
		ID:              util.NewID(),
		UserID:          userID,
		Title:           req.Title,
		UploadDate:      time.Now(),
		Status:          status,
		MedicationNames: req.MedicationNames,
		FileURL:         req.FileURL,
		FileName:        req.FileName,
		FileType:        req.FileType,
	}

	// 可选字段只在提供时设置
	if req.DoctorName != "" {
		record.DoctorName = &req.DoctorName
	}
	if req.Hospital != "" {
		record.Hospital = &req.Hospital
	}
	if req.Category != "" {
		record.Category = &req.Category
	}
	if req.Description != "" {
		record.Description = &req.Description
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// ListRecords 获取用户的记录列表
// 按创建时间倒序排列（最新的在前）
func (s *RecordService) ListRecords(ctx context.Context, userID int64) ([]model.Record, error) {
	return s.recordRepo.GetByUserID(ctx, userID)
}

// GetRecord 获取单条记录
// 参数:
//   - ctx: 上下文
//   - userID: 发起请求的用户ID
//   - recordID: 记录ID
//
// 返回:
//   - *model.Record: 记录对象
//   - error: 记录不存在或不属于该用户
func (s *RecordService) GetRecord(ctx context.Context, userID int64, recordID string) (*model.Record, error) {
	record, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	// 归属校验
	if record.UserID != userID {
		return nil, ErrNoPermission
	}
	return record, nil
}

// UpdateRecordStatus 修改记录状态
// 记录上传后除状态外不可变
// 参数:
//   - ctx: 上下文
//   - userID: 发起请求的用户ID
//   - recordID: 记录ID
//   - status: 新状态
//
// 返回:
//   - *model.Record: 更新后的记录
//   - error: 记录不存在/无权限/数据库错误
func (s *RecordService) UpdateRecordStatus(ctx context.Context, userID int64, recordID, status string) (*model.Record, error) {
	record, err := s.GetRecord(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	if err := s.recordRepo.UpdateStatus(ctx, record.ID, status); err != nil {
		return nil, err
	}

	record.Status = status
	return record, nil
}

// DeleteRecord 删除记录
// 只在用户显式操作时调用
func (s *RecordService) DeleteRecord(ctx context.Context, userID int64, recordID string) error {
	record, err := s.GetRecord(ctx, userID, recordID)
	if err != nil {
		return err
	}
	return s.recordRepo.Delete(ctx, record.ID)
}
