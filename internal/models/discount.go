package models

import (
	"time"

	"gorm.io/gorm"
)

// Discount 优惠活动表
type Discount struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                                             // 主键
	Code                 string         `gorm:"uniqueIndex;not null" json:"code"`                                 // 优惠码（统一大写）
	Description          string         `gorm:"type:varchar(500)" json:"description"`                             // 说明
	Type                 string         `gorm:"not null" json:"type"`                                             // 类型（percentage/fixed_amount/free_shipping/buy_x_get_y）
	Value                Money          `gorm:"type:decimal(20,2);not null" json:"value"`                         // 数值（百分比或固定金额）
	MinOrderAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"`    // 最低订单金额门槛
	MaxDiscountAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"max_discount_amount"` // 最大优惠金额（仅百分比类型生效，0 表示不设上限）
	ValidFrom            *time.Time     `gorm:"index" json:"valid_from"`                                          // 生效时间
	ValidTo              *time.Time     `gorm:"index" json:"valid_to"`                                            // 失效时间
	UsageLimit           int            `gorm:"not null;default:0" json:"usage_limit"`                            // 总使用上限（0 表示不限制）
	UsageCount           int            `gorm:"not null;default:0" json:"usage_count"`                            // 已使用次数
	PerCustomerLimit     int            `gorm:"not null;default:0" json:"per_customer_limit"`                     // 每人使用上限（当前校验路径未消费该字段）
	CustomerSegment      string         `gorm:"not null;default:'all'" json:"customer_segment"`                   // 适用客户群
	ApplicableProducts   UintArray      `gorm:"type:text" json:"applicable_products"`                             // 适用商品ID集合（计算路径未按此过滤）
	ApplicableCategories UintArray      `gorm:"type:text" json:"applicable_categories"`                           // 适用分类ID集合（计算路径未按此过滤）
	IsActive             bool           `gorm:"not null;default:true" json:"is_active"`                           // 是否启用
	AutoApply            bool           `gorm:"not null;default:false" json:"auto_apply"`                         // 是否自动应用
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                                          // 创建时间
	UpdatedAt            time.Time      `gorm:"index" json:"updated_at"`                                          // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                                   // 软删除时间
}

// TableName 指定表名
func (Discount) TableName() string {
	return "discounts"
}

// IsCurrentlyValid 判断优惠当前是否可用：启用、处于有效期内且未达使用上限
func (d *Discount) IsCurrentlyValid(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidTo != nil && now.After(*d.ValidTo) {
		return false
	}
	if d.UsageLimit > 0 && d.UsageCount >= d.UsageLimit {
		return false
	}
	return true
}
