// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"

	"medivault-server/internal/model"
	"medivault-server/internal/repository"
	"medivault-server/pkg/util"
)

// ErrMedicineNotFound 药品条目不存在
var ErrMedicineNotFound = errors.New("medicine not found")

// MedicineService 药品服务
// 维护用户当前和历史服用的药品清单
type MedicineService struct {
	medicineRepo *repository.MedicineRepository // 药品数据访问层
}

// NewMedicineService 创建 MedicineService 实例
func NewMedicineService(medicineRepo *repository.MedicineRepository) *MedicineService {
	return &MedicineService{
		medicineRepo: medicineRepo,
	}
}

// MedicineRequest 创建/更新药品条目的请求
type MedicineRequest struct {
	Name         string   `json:"name" binding:"required,max=100"` // 药品名称
	Dosage       string   `json:"dosage"`                          // 剂量，如 "20mg"
	Frequency    string   `json:"frequency"`                       // 服用频率
	StartDate    string   `json:"start_date"`                      // 开始日期 YYYY-MM-DD
	EndDate      string   `json:"end_date"`                        // 结束日期或 "Ongoing"
	Purpose      string   `json:"purpose"`                         // 用药目的（可选）
	PrescribedBy string   `json:"prescribed_by"`                   // 开具医生（可选）
	Status       string   `json:"status"`                          // 状态，缺省为 active
	SideEffects  []string `json:"side_effects"`                    // 已知副作用（可选）
	Instructions string   `json:"instructions"`                    // 服用说明（可选）
}

// CreateMedicine 创建药品条目
func (s *MedicineService) CreateMedicine(ctx context.Context, userID int64, req *MedicineRequest) (*model.Medicine, error) {
	status := req.Status
	if status == "" {
		status = model.MedicineStatusActive
	}

	medicine := &model.Medicine{
		ID:          util.NewID(),
		UserID:      userID,
		Name:        req.Name,
		Dosage:      req.Dosage,
		Frequency:   req.Frequency,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      status,
		SideEffects: req.SideEffects,
	}

	if req.Purpose != "" {
		medicine.Purpose = &req.Purpose
	}
	if req.PrescribedBy != "" {
		medicine.PrescribedBy = &req.PrescribedBy
	}
	if req.Instructions != "" {
		medicine.Instructions = &req.Instructions
	}

	if err := s.medicineRepo.Create(ctx, medicine); err != nil {
		return nil, err
	}

	return medicine, nil
}

// ListMedicines 获取用户的药品列表
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - activeOnly: 是否只返回正在服用的药品
//
// 返回:
//   - []model.Medicine: 药品列表，按创建时间倒序
//   - error: 数据库错误
func (s *MedicineService) ListMedicines(ctx context.Context, userID int64, activeOnly bool) ([]model.Medicine, error) {
	if activeOnly {
		return s.medicineRepo.GetActiveByUserID(ctx, userID)
	}
	return s.medicineRepo.GetByUserID(ctx, userID)
}

// GetMedicine 获取单个药品条目
// 校验归属，用户只能查看自己的条目
func (s *MedicineService) GetMedicine(ctx context.Context, userID int64, medicineID string) (*model.Medicine, error) {
	medicine, err := s.medicineRepo.GetByID(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}
	if medicine.UserID != userID {
		return nil, ErrNoPermission
	}
	return medicine, nil
}

// UpdateMedicine 更新药品条目
// 整体覆盖可编辑字段
func (s *MedicineService) UpdateMedicine(ctx context.Context, userID int64, medicineID string, req *MedicineRequest) (*model.Medicine, error) {
	medicine, err := s.GetMedicine(ctx, userID, medicineID)
	if err != nil {
		return nil, err
	}

	medicine.Name = req.Name
	medicine.Dosage = req.Dosage
	medicine.Frequency = req.Frequency
	medicine.StartDate = req.StartDate
	medicine.EndDate = req.EndDate
	medicine.SideEffects = req.SideEffects
	if req.Status != "" {
		medicine.Status = req.Status
	}

	medicine.Purpose = nil
	if req.Purpose != "" {
		medicine.Purpose = &req.Purpose
	}
	medicine.PrescribedBy = nil
	if req.PrescribedBy != "" {
		medicine.PrescribedBy = &req.PrescribedBy
	}
	medicine.Instructions = nil
	if req.Instructions != "" {
		medicine.Instructions = &req.Instructions
	}

	if err := s.medicineRepo.Update(ctx, medicine); err != nil {
		return nil, err
	}

	return medicine, nil
}

// DeleteMedicine 删除药品条目
func (s *MedicineService) DeleteMedicine(ctx context.Context, userID int64, medicineID string) error {
	medicine, err := s.GetMedicine(ctx, userID, medicineID)
	if err != nil {
		return err
	}
	return s.medicineRepo.Delete(ctx, medicine.ID)
}
