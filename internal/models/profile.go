package models

import "time"

// UserProfile 用户资料（昵称与收货信息），首次使用时创建
type UserProfile struct {
	UserID       uint      `gorm:"primarykey;autoIncrement:false" json:"user_id"` // 用户ID
	Nickname     string    `gorm:"type:varchar(50)" json:"nickname"`              // 昵称
	FullName     string    `gorm:"type:varchar(100)" json:"full_name"`            // 姓名
	PostalCode   string    `gorm:"type:varchar(16)" json:"postal_code"`           // 邮编
	Prefecture   string    `gorm:"type:varchar(32)" json:"prefecture"`            // 都道府县
	City         string    `gorm:"type:varchar(100)" json:"city"`                 // 市区町村
	AddressLine1 string    `gorm:"type:varchar(255)" json:"address_line1"`        // 地址1
	AddressLine2 string    `gorm:"type:varchar(255)" json:"address_line2"`        // 地址2（可选）
	PhoneNumber  string    `gorm:"type:varchar(32)" json:"phone_number"`          // 电话
	CreatedAt    time.Time `json:"created_at"`                                    // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                    // 更新时间
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "profiles"
}
