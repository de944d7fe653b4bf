package constants

// 订单状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusProcessing     = "processing"
	OrderStatusShipped        = "shipped"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
	OrderStatusReturned       = "returned"
	OrderStatusRefunded       = "refunded"
)

// 支付状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// 优惠类型常量
const (
	DiscountTypePercentage   = "percentage"
	DiscountTypeFixedAmount  = "fixed_amount"
	DiscountTypeFreeShipping = "free_shipping"
	DiscountTypeBuyXGetY     = "buy_x_get_y"
)

// 优惠适用客户群常量
const (
	CustomerSegmentAll       = "all"
	CustomerSegmentNew       = "new_customers"
	CustomerSegmentReturning = "returning_customers"
	CustomerSegmentVIP       = "vip"
)

// 保修状态常量
const (
	WarrantyStatusActive  = "active"
	WarrantyStatusExpired = "expired"
	WarrantyStatusClaimed = "claimed"
	WarrantyStatusVoided  = "voided"
)

// 保修即将到期窗口（天）
const (
	WarrantyExpiringSoonDays = 30
)

// 库存档案状态常量
const (
	InventoryStatusInService      = "in_service"
	InventoryStatusInRepair       = "in_repair"
	InventoryStatusDecommissioned = "decommissioned"
)

// 用户角色常量
const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列常量
const (
	QueueDefault      = "default"
	TaskWarrantySweep = "warranty:expire_sweep"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "gm"
)

// 单号前缀常量
const (
	OrderNumberPrefix    = "ORD"
	WarrantyNumberPrefix = "WRN"
)

// 币种常量
const (
	SiteCurrencyDefault = "USD"
)
