package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
	OnlyActive bool
	InStock    bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	Status        string
	PaymentStatus string
	OrderNo       string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
	Status   string
}

// DiscountListFilter 查询优惠列表的过滤条件
type DiscountListFilter struct {
	Page     int
	PageSize int
	Code     string
	Type     string
	IsActive *bool
}

// WarrantyListFilter 查询保修记录列表的过滤条件
type WarrantyListFilter struct {
	Page      int
	PageSize  int
	UserID    uint
	ProductID uint
	OrderID   uint
	Status    string
	EndBefore *time.Time
	EndAfter  *time.Time
}

// InventoryListFilter 查询库存档案列表的过滤条件
type InventoryListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}
