package repository

import (
	"time"

	"github.com/gearmart-next/internal/constants"
	"github.com/gearmart-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetWarrantyStats(now time.Time) (DashboardWarrantyStatsRow, error)
	GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error)
	GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	OrdersTotal     int64
	PendingOrders   int64
	ShippedOrders   int64
	DeliveredOrders int64
	CancelledOrders int64
	Revenue         float64
	NewUsers        int64
	ActiveProducts  int64
}

// DashboardWarrantyStatsRow 保修统计
type DashboardWarrantyStatsRow struct {
	ActiveWarranties  int64
	ExpiringSoon      int64
	ExpiredWarranties int64
	ClaimsFiled       int64
}

// DashboardStockStatsRow 库存统计
type DashboardStockStatsRow struct {
	OutOfStockProducts int64
	LowStockProducts   int64
}

// DashboardProductRankingRow 商品排行原始行
type DashboardProductRankingRow struct {
	ProductID  uint
	Name       string
	Quantity   int64
	PaidAmount float64
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取时间段内订单/营收/新用户总览
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	var row DashboardOverviewRow

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{}).Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}

	if err := orderBase().Count(&row.OrdersTotal).Error; err != nil {
		return row, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusPending).Count(&row.PendingOrders).Error; err != nil {
		return row, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusShipped).Count(&row.ShippedOrders).Error; err != nil {
		return row, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusDelivered).Count(&row.DeliveredOrders).Error; err != nil {
		return row, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusCancelled).Count(&row.CancelledOrders).Error; err != nil {
		return row, err
	}
	if err := orderBase().
		Where("status <> ?", constants.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&row.Revenue).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&row.NewUsers).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&row.ActiveProducts).Error; err != nil {
		return row, err
	}
	return row, nil
}

// GetWarrantyStats 获取保修状态统计
func (r *GormDashboardRepository) GetWarrantyStats(now time.Time) (DashboardWarrantyStatsRow, error) {
	var row DashboardWarrantyStatsRow
	base := func() *gorm.DB {
		return r.db.Model(&models.Warranty{})
	}

	if err := base().Where("status = ?", constants.WarrantyStatusActive).Count(&row.ActiveWarranties).Error; err != nil {
		return row, err
	}
	soonEnd := now.AddDate(0, 0, constants.WarrantyExpiringSoonDays)
	if err := base().
		Where("status = ? AND end_date >= ? AND end_date <= ?", constants.WarrantyStatusActive, now, soonEnd).
		Count(&row.ExpiringSoon).Error; err != nil {
		return row, err
	}
	if err := base().Where("status = ?", constants.WarrantyStatusExpired).Count(&row.ExpiredWarranties).Error; err != nil {
		return row, err
	}
	if err := base().Where("claim_filed = ?", true).Count(&row.ClaimsFiled).Error; err != nil {
		return row, err
	}
	return row, nil
}

// GetStockStats 获取库存统计
func (r *GormDashboardRepository) GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error) {
	var row DashboardStockStatsRow
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}
	if err := r.db.Model(&models.Product{}).
		Where("is_active = ? AND stock_quantity <= 0", true).
		Count(&row.OutOfStockProducts).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("is_active = ? AND stock_quantity > 0 AND stock_quantity <= ?", true, lowStockThreshold).
		Count(&row.LowStockProducts).Error; err != nil {
		return row, err
	}
	return row, nil
}

// GetTopProducts 获取时间段内销量排行
func (r *GormDashboardRepository) GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []DashboardProductRankingRow
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, order_items.product_name AS name, SUM(order_items.quantity) AS quantity, COALESCE(SUM(order_items.total_price), 0) AS paid_amount").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ? AND orders.status <> ?", startAt, endAt, constants.OrderStatusCancelled).
		Group("order_items.product_id, order_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
