package models

import "time"

// OrderItem 订单项表，价格为下单时快照
type OrderItem struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                           // 主键
	OrderID         uint      `gorm:"index;not null" json:"order_id"`                                 // 订单ID
	ProductID       uint      `gorm:"index;not null" json:"product_id"`                               // 商品ID
	Title           string    `gorm:"type:varchar(200);not null" json:"title"`                        // 商品标题快照
	Image           string    `gorm:"type:varchar(500)" json:"image"`                                 // 主图快照
	Quantity        int       `gorm:"not null" json:"quantity"`                                       // 数量
	PriceAtPurchase Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_at_purchase"` // 下单单价
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                        // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal 单价乘数量
func (i OrderItem) Subtotal() Money {
	return i.PriceAtPurchase.Mul(i.Quantity)
}
