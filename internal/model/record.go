// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// 记录状态常量
// 状态在数据库中是自由字符串，这里只列出前端使用的值
const (
	RecordStatusActive    = "active"    // 处方生效中
	RecordStatusCompleted = "completed" // 疗程已结束
	RecordStatusReviewed  = "reviewed"  // 已由医生复核
	RecordStatusNormal    = "normal"    // 检查结果正常
	RecordStatusAbnormal  = "abnormal"  // 检查结果异常
)

// Record 医疗记录模型
// 对应数据库表 records
// 每条记录是用户上传的一份处方/检查报告，上传后除状态外不可变
type Record struct {
	// ID 记录唯一标识，UUID 字符串
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// UserID 所属用户ID，外键关联 users.id
	// 每条记录只属于一个用户，所有查询必须带此过滤条件
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// Title 记录标题，如 "Blood Test - Complete Panel"
	Title string `gorm:"size:200;not null" json:"title"`

	// UploadDate 上传日期
	UploadDate time.Time `gorm:"not null" json:"upload_date"`

	// DoctorName 开具医生，可选
	DoctorName *string `gorm:"size:100" json:"doctor_name,omitempty"`

	// Hospital 就诊医院，可选
	Hospital *string `gorm:"size:200" json:"hospital,omitempty"`

	// Category 分类，如 Cardiology / General，可选
	Category *string `gorm:"size:50" json:"category,omitempty"`

	// Description 描述，可选
	Description *string `gorm:"type:text" json:"description,omitempty"`

	// Status 记录状态，见 RecordStatus* 常量
	Status string `gorm:"size:20;not null;default:active" json:"status"`

	// MedicationNames 处方中的药品名称列表
	// 以 JSON 数组存储在单个字段中
	MedicationNames []string `gorm:"serializer:json" json:"medication_names,omitempty"`

	// FileURL 原始文件的存储地址
	FileURL string `gorm:"size:500" json:"file_url"`

	// FileName 原始文件名
	FileName string `gorm:"size:255" json:"file_name"`

	// FileType 文件 MIME 类型，如 application/pdf
	FileType string `gorm:"size:100" json:"file_type"`

	// CreatedAt 创建时间，由 GORM 自动填充
	// 列表查询按此字段倒序（最新的在前）
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// UpdatedAt 更新时间，由 GORM 自动更新
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Record) TableName() string {
	return "records"
}
