package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                                      // 主键
	CategoryID           uint           `gorm:"not null;index" json:"category_id"`                         // 分类ID
	Name                 string         `gorm:"not null;index" json:"name"`                                // 商品名称
	SKU                  string         `gorm:"uniqueIndex;not null" json:"sku"`                           // 商品编码
	Description          string         `gorm:"type:text" json:"description"`                              // 商品描述
	Price                Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 售价
	StockQuantity        int            `gorm:"not null;default:0" json:"stock_quantity"`                  // 库存数量
	SoldCount            int            `gorm:"not null;default:0" json:"sold_count"`                      // 累计售出数量
	Color                string         `gorm:"type:varchar(50)" json:"color"`                             // 颜色
	Size                 string         `gorm:"type:varchar(50)" json:"size"`                              // 规格
	SerialNumber         string         `gorm:"type:varchar(100)" json:"serial_number"`                    // 序列号（同型号共用，见保修记录快照）
	WarrantyPeriodMonths int            `gorm:"not null;default:12" json:"warranty_period_months"`         // 保修期（月）
	ImageURL             string         `gorm:"type:varchar(500)" json:"image_url"`                        // 商品主图
	IsActive             bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	SortOrder            int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt            time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// InStock 判断库存是否满足指定数量
func (p *Product) InStock(quantity int) bool {
	return p.StockQuantity >= quantity
}
