package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo      string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	UserID       uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Status       string         `gorm:"index;not null" json:"status"`                              // 订单状态
	TotalAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 合计金额
	ContactEmail string         `gorm:"type:varchar(255)" json:"contact_email"`                    // 联系邮箱
	FullName     string         `gorm:"type:varchar(100)" json:"full_name"`                        // 收件人姓名快照
	PostalCode   string         `gorm:"type:varchar(16)" json:"postal_code"`                       // 邮编快照
	Prefecture   string         `gorm:"type:varchar(32)" json:"prefecture"`                        // 都道府县快照
	City         string         `gorm:"type:varchar(100)" json:"city"`                             // 市区町村快照
	AddressLine1 string         `gorm:"type:varchar(255)" json:"address_line1"`                    // 地址1快照
	AddressLine2 string         `gorm:"type:varchar(255)" json:"address_line2"`                    // 地址2快照
	PhoneNumber  string         `gorm:"type:varchar(32)" json:"phone_number"`                      // 电话快照
	PaidAt       *time.Time     `gorm:"index" json:"paid_at"`                                      // 确认收款时间
	CanceledAt   *time.Time     `gorm:"index" json:"canceled_at"`                                  // 取消时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
