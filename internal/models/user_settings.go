package models

import "time"

// UserSettings 用户通知渠道开关
type UserSettings struct {
	UserID            uint      `gorm:"primarykey;autoIncrement:false" json:"user_id"`   // 用户ID
	EmailNotification bool      `gorm:"not null;default:true" json:"email_notification"` // 邮件通知
	AppNotification   bool      `gorm:"not null;default:true" json:"app_notification"`   // 站内通知
	CreatedAt         time.Time `json:"created_at"`                                      // 创建时间
	UpdatedAt         time.Time `json:"updated_at"`                                      // 更新时间
}

// TableName 指定表名
func (UserSettings) TableName() string {
	return "user_settings"
}
