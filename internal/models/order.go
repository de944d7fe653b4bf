package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                          // 主键
	OrderNo           string         `gorm:"uniqueIndex;not null" json:"order_no"`                          // 订单编号（ORD-YYYYMMDD-XXXXXXXX）
	UserID            uint           `gorm:"index;not null" json:"user_id"`                                 // 用户ID
	Status            string         `gorm:"index;not null" json:"status"`                                  // 订单状态
	PaymentStatus     string         `gorm:"index;not null;default:'pending'" json:"payment_status"`        // 支付状态
	PaymentMethod     string         `gorm:"type:varchar(50)" json:"payment_method,omitempty"`              // 支付方式
	Subtotal          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`         // 商品小计
	DiscountAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`  // 优惠金额
	TaxAmount         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`       // 税费
	ShippingAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_amount"`  // 运费
	TotalAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`     // 实付金额
	DiscountID        *uint          `gorm:"index" json:"discount_id,omitempty"`                            // 应用的优惠ID
	ShippingName      string         `gorm:"type:varchar(200);not null" json:"shipping_name"`               // 收货人（下单时快照）
	ShippingAddress   string         `gorm:"type:varchar(300);not null" json:"shipping_address"`            // 收货地址
	ShippingCity      string         `gorm:"type:varchar(100);not null" json:"shipping_city"`               // 城市
	ShippingState     string         `gorm:"type:varchar(100);not null" json:"shipping_state"`              // 省/州
	ShippingZipCode   string         `gorm:"type:varchar(20);not null" json:"shipping_zip_code"`            // 邮编
	ShippingCountry   string         `gorm:"type:varchar(100);not null" json:"shipping_country"`            // 国家
	ShippingPhone     string         `gorm:"type:varchar(30);not null" json:"shipping_phone"`               // 收货电话
	TrackingNumber    string         `gorm:"type:varchar(100);index" json:"tracking_number,omitempty"`      // 物流单号（发货后填写）
	Carrier           string         `gorm:"type:varchar(100)" json:"carrier,omitempty"`                    // 承运商
	EstimatedDelivery *time.Time     `json:"estimated_delivery,omitempty"`                                  // 预计送达时间
	ActualDelivery    *time.Time     `json:"actual_delivery,omitempty"`                                     // 实际送达时间
	Notes             string         `gorm:"type:text" json:"notes,omitempty"`                              // 备注
	CancelledAt       *time.Time     `gorm:"index" json:"cancelled_at,omitempty"`                           // 取消时间
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
