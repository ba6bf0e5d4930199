// Package model 定义了与数据库表对应的数据结构
// 这些结构体类似于 Java 中的 Entity 类
package model

import (
	"time"
)

// User 用户（患者）模型
// 对应数据库表 users
// 存储账号凭据和个人健康档案资料
type User struct {
	// ID 用户唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// Email 登录邮箱，全局唯一
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`

	// PasswordHash 密码的 bcrypt 哈希值
	// 永远不要存储明文密码！
	PasswordHash string `gorm:"size:255;not null" json:"-"` // json:"-" 表示序列化时忽略此字段

	// DisplayName 显示名称，可选
	DisplayName *string `gorm:"size:100" json:"display_name,omitempty"`

	// Phone 联系电话，可选
	Phone *string `gorm:"size:30" json:"phone,omitempty"`

	// Address 住址，可选
	Address *string `gorm:"size:255" json:"address,omitempty"`

	// DateOfBirth 出生日期，可选（格式 YYYY-MM-DD）
	DateOfBirth *string `gorm:"size:10" json:"date_of_birth,omitempty"`

	// EmergencyContact 紧急联系人，可选
	EmergencyContact *string `gorm:"size:100" json:"emergency_contact,omitempty"`

	// MedicalNotes 病史备注，可选
	// 使用 TEXT 类型存储，可以存储较长的内容
	MedicalNotes *string `gorm:"type:text" json:"medical_notes,omitempty"`

	// Status 账号状态
	// 1: 正常
	// 0: 禁用
	Status int8 `gorm:"default:1" json:"status"`

	// CreatedAt 创建时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// UpdatedAt 更新时间，由 GORM 自动更新
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Records 用户上传的医疗记录（一对多关系）
	// 这是 GORM 的关联关系，不会在数据库中创建字段
	Records []Record `gorm:"foreignKey:UserID" json:"records,omitempty"`
}

// TableName 指定表名
// GORM 会使用这个方法返回的表名，而不是默认的复数形式
func (User) TableName() string {
	return "users"
}
