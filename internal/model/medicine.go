// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// 药品状态常量
const (
	MedicineStatusActive    = "active"    // 正在服用
	MedicineStatusCompleted = "completed" // 疗程已结束
)

// Medicine 药品模型
// 对应数据库表 medicines
// 用户当前或历史服用的药品，与处方记录相互独立维护
type Medicine struct {
	// ID 药品条目唯一标识，UUID 字符串
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// UserID 所属用户ID，外键关联 users.id
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// Name 药品名称，如 "Atorvastatin"
	Name string `gorm:"size:100;not null" json:"name"`

	// Dosage 剂量，如 "20mg"
	Dosage string `gorm:"size:50" json:"dosage"`

	// Frequency 服用频率，如 "Once daily (evening)"
	Frequency string `gorm:"size:100" json:"frequency"`

	// StartDate 开始日期（格式 YYYY-MM-DD）
	StartDate string `gorm:"size:10" json:"start_date"`

	// EndDate 结束日期，长期服用填 "Ongoing"
	EndDate string `gorm:"size:10" json:"end_date"`

	// Purpose 用药目的，可选
	Purpose *string `gorm:"size:255" json:"purpose,omitempty"`

	// PrescribedBy 开具医生，可选
	PrescribedBy *string `gorm:"size:100" json:"prescribed_by,omitempty"`

	// Status 状态，见 MedicineStatus* 常量
	Status string `gorm:"size:20;not null;default:active" json:"status"`

	// SideEffects 已知副作用列表，以 JSON 数组存储
	SideEffects []string `gorm:"serializer:json" json:"side_effects,omitempty"`

	// Instructions 服用说明，如 "Take with food"，可选
	Instructions *string `gorm:"size:255" json:"instructions,omitempty"`

	// CreatedAt 创建时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// UpdatedAt 更新时间，由 GORM 自动更新
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Medicine) TableName() string {
	return "medicines"
}
