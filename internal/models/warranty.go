package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/gearmart-next/internal/constants"
)

// Warranty 保修记录表
type Warranty struct {
	ID           uint           `gorm:"primarykey" json:"id"`                          // 主键
	WarrantyNo   string         `gorm:"uniqueIndex;not null" json:"warranty_no"`       // 保修编号（WRN-XXXXXXXXXXXX）
	ProductID    uint           `gorm:"index;not null" json:"product_id"`              // 商品ID
	UserID       uint           `gorm:"index;not null" json:"user_id"`                 // 用户ID
	OrderID      *uint          `gorm:"index" json:"order_id,omitempty"`               // 来源订单ID
	SerialNumber string         `gorm:"type:varchar(100)" json:"serial_number"`        // 序列号（签发时从商品复制）
	PurchaseDate time.Time      `gorm:"not null" json:"purchase_date"`                 // 购买日期
	StartDate    time.Time      `gorm:"not null" json:"start_date"`                    // 保修起始日期
	EndDate      time.Time      `gorm:"index;not null" json:"end_date"`                // 保修截止日期（起始日期 + 保修期）
	Status       string         `gorm:"index;not null;default:'active'" json:"status"` // 保修状态
	ClaimFiled   bool           `gorm:"not null;default:false" json:"claim_filed"`     // 是否提交过索赔
	ClaimCount   int            `gorm:"not null;default:0" json:"claim_count"`         // 索赔次数
	LastClaimAt  *time.Time     `json:"last_claim_at,omitempty"`                       // 最近索赔时间
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`              // 备注
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                       // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (Warranty) TableName() string {
	return "warranties"
}

// IsValid 判断保修当前是否有效：状态为 active 且未到截止日期
func (w *Warranty) IsValid(now time.Time) bool {
	return w.Status == constants.WarrantyStatusActive && now.Before(w.EndDate)
}

// DaysUntilExpiry 距保修到期的天数（已过期时为负数）
func (w *Warranty) DaysUntilExpiry(now time.Time) int {
	return int(w.EndDate.Sub(now).Hours() / 24)
}

// IsExpiringSoon 判断是否即将到期：有效、截止日期仍在未来且剩余天数不超过 30 天
func (w *Warranty) IsExpiringSoon(now time.Time) bool {
	if w.Status != constants.WarrantyStatusActive || !now.Before(w.EndDate) {
		return false
	}
	return w.DaysUntilExpiry(now) <= constants.WarrantyExpiringSoonDays
}
