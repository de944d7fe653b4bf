package service

import (
	"context"
	"time"

	"github.com/gearmart-next/internal/cache"
	"github.com/gearmart-next/internal/logger"
	"github.com/gearmart-next/internal/repository"
)

// DashboardService 仪表盘统计服务
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	cacheTTL      time.Duration
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(dashboardRepo repository.DashboardRepository, cacheTTLSeconds int) *DashboardService {
	ttl := time.Duration(cacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		cacheTTL:      ttl,
	}
}

// DashboardStats 仪表盘统计结果
type DashboardStats struct {
	Orders    repository.DashboardOverviewRow         `json:"orders"`
	Warranty  repository.DashboardWarrantyStatsRow    `json:"warranty"`
	Stock     repository.DashboardStockStatsRow       `json:"stock"`
	Top       []repository.DashboardProductRankingRow `json:"top_products"`
	StartAt   time.Time                               `json:"start_at"`
	EndAt     time.Time                               `json:"end_at"`
	FromCache bool                                    `json:"from_cache"`
}

const dashboardCacheKey = "dashboard:stats"

// GetStats 获取最近 N 天的仪表盘统计，命中缓存时直接返回缓存快照。
func (s *DashboardService) GetStats(ctx context.Context, days int) (*DashboardStats, error) {
	if days <= 0 {
		days = 30
	}
	now := time.Now()
	startAt := now.AddDate(0, 0, -days)

	if cache.Enabled() {
		var cached DashboardStats
		hit, err := cache.GetJSON(ctx, dashboardCacheKey, &cached)
		if err != nil {
			logger.Warnw("dashboard_cache_get_failed", "error", err)
		} else if hit && cached.StartAt.Equal(startAt.Truncate(time.Hour)) {
			cached.FromCache = true
			return &cached, nil
		}
	}

	overview, err := s.dashboardRepo.GetOverview(startAt, now)
	if err != nil {
		return nil, err
	}
	warrantyStats, err := s.dashboardRepo.GetWarrantyStats(now)
	if err != nil {
		return nil, err
	}
	stockStats, err := s.dashboardRepo.GetStockStats(0)
	if err != nil {
		return nil, err
	}
	top, err := s.dashboardRepo.GetTopProducts(startAt, now, 10)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Orders:   overview,
		Warranty: warrantyStats,
		Stock:    stockStats,
		Top:      top,
		StartAt:  startAt.Truncate(time.Hour),
		EndAt:    now,
	}

	if cache.Enabled() {
		if err := cache.SetJSON(ctx, dashboardCacheKey, stats, s.cacheTTL); err != nil {
			logger.Warnw("dashboard_cache_set_failed", "error", err)
		}
	}
	return stats, nil
}
