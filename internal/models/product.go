package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 教材商品表
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`                               // 主键
	Title          string         `gorm:"type:varchar(200);not null" json:"title"`            // 标题
	CatchCopy      string         `gorm:"type:varchar(200)" json:"catch_copy"`                // 宣传语
	Price          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 价格（日元）
	Category       string         `gorm:"type:varchar(32);not null;index" json:"category"`    // 分类
	Description    string         `gorm:"type:text" json:"description"`                       // 详细说明
	HowTo          string         `gorm:"type:text" json:"how_to"`                            // 使用方法
	Image          string         `gorm:"type:varchar(500)" json:"image"`                     // 主图
	Images         StringArray    `gorm:"type:json" json:"images"`                            // 图片数组
	Specs          ProductSpecs   `gorm:"type:json" json:"specs"`                             // 规格（格式/尺寸/页数）
	TargetAudience StringArray    `gorm:"type:json" json:"target_audience"`                   // 适用学生
	Benefits       StringArray    `gorm:"type:json" json:"benefits"`                          // 使用效果
	IsNew          bool           `gorm:"not null;default:false" json:"is_new"`               // 新品标记
	IsPopular      bool           `gorm:"not null;default:false" json:"is_popular"`           // 人气标记
	IsActive       bool           `gorm:"not null;default:true;index" json:"is_active"`       // 是否上架
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
