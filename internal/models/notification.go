package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification 管理员发布的全站通知
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                 // 主键
	Title     string         `gorm:"type:varchar(200);not null" json:"title"`              // 标题
	Content   string         `gorm:"type:text" json:"content"`                             // 内容
	Type      string         `gorm:"type:varchar(20);not null;default:'info'" json:"type"` // 类型 info/alert/new_arrival
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                           // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
