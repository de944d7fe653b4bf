package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryItem 库存档案表（在役实物设备，独立于商品保修记录，
// 整机保修与电机保修两条轨道互相独立，可同时存在、只存在其一或都不存在）
type InventoryItem struct {
	ID                    uint           `gorm:"primarykey" json:"id"`                              // 主键
	Name                  string         `gorm:"not null" json:"name"`                              // 设备名称
	SerialNumber          string         `gorm:"uniqueIndex;not null" json:"serial_number"`         // 设备序列号
	Status                string         `gorm:"index;not null;default:'in_service'" json:"status"` // 设备状态
	Location              string         `gorm:"type:varchar(200)" json:"location"`                 // 存放位置
	PurchaseDate          *time.Time     `json:"purchase_date,omitempty"`                           // 购入日期
	HasProductWarranty    bool           `gorm:"not null;default:false" json:"has_product_warranty"` // 是否有整机保修
	ProductWarrantyMonths int            `gorm:"not null;default:0" json:"product_warranty_months"` // 整机保修期（月）
	ProductWarrantyStart  *time.Time     `json:"product_warranty_start,omitempty"`                  // 整机保修起始日期
	ProductWarrantyEnd    *time.Time     `json:"product_warranty_end,omitempty"`                    // 整机保修截止日期
	HasMotorWarranty      bool           `gorm:"not null;default:false" json:"has_motor_warranty"`  // 是否有电机保修
	MotorWarrantyMonths   int            `gorm:"not null;default:0" json:"motor_warranty_months"`   // 电机保修期（月）
	MotorWarrantyStart    *time.Time     `json:"motor_warranty_start,omitempty"`                    // 电机保修起始日期
	MotorWarrantyEnd      *time.Time     `json:"motor_warranty_end,omitempty"`                      // 电机保修截止日期
	Notes                 string         `gorm:"type:text" json:"notes,omitempty"`                  // 备注
	CreatedAt             time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt             time.Time      `json:"updated_at"`                                        // 更新时间
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// ProductWarrantyValid 判断整机保修当前是否有效
func (i *InventoryItem) ProductWarrantyValid(now time.Time) bool {
	return i.HasProductWarranty && i.ProductWarrantyEnd != nil && now.Before(*i.ProductWarrantyEnd)
}

// MotorWarrantyValid 判断电机保修当前是否有效
func (i *InventoryItem) MotorWarrantyValid(now time.Time) bool {
	return i.HasMotorWarranty && i.MotorWarrantyEnd != nil && now.Before(*i.MotorWarrantyEnd)
}

// HasAnyValidWarranty 任一轨道保修有效即为真
func (i *InventoryItem) HasAnyValidWarranty(now time.Time) bool {
	return i.ProductWarrantyValid(now) || i.MotorWarrantyValid(now)
}

// WarrantyDaysRemaining 有效轨道中剩余天数的最小值；无任何有效保修时返回 0
func (i *InventoryItem) WarrantyDaysRemaining(now time.Time) int {
	remaining := -1
	if i.ProductWarrantyValid(now) {
		remaining = int(i.ProductWarrantyEnd.Sub(now).Hours() / 24)
	}
	if i.MotorWarrantyValid(now) {
		days := int(i.MotorWarrantyEnd.Sub(now).Hours() / 24)
		if remaining < 0 || days < remaining {
			remaining = days
		}
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}
