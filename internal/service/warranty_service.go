package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/gearmart-next/internal/constants"
	"github.com/gearmart-next/internal/logger"
	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WarrantyService 保修服务
type WarrantyService struct {
	warrantyRepo repository.WarrantyRepository
	productRepo  repository.ProductRepository
}

// NewWarrantyService 创建保修服务
func NewWarrantyService(warrantyRepo repository.WarrantyRepository, productRepo repository.ProductRepository) *WarrantyService {
	return &WarrantyService{
		warrantyRepo: warrantyRepo,
		productRepo:  productRepo,
	}
}

// generateWarrantyNo 生成保修编号（WRN-XXXXXXXXXXXX）
func generateWarrantyNo() string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", constants.WarrantyNumberPrefix, random[:12])
}

// IssueForOrderItem 为订单项签发保修记录：起保日为当天，
// 截止日为起保日加商品保修期（月），序列号从商品快照复制。
func (s *WarrantyService) IssueForOrderItem(tx *gorm.DB, product *models.Product, userID, orderID uint, now time.Time) (*models.Warranty, error) {
	if product == nil {
		return nil, ErrProductNotFound
	}
	months := product.WarrantyPeriodMonths
	if months <= 0 {
		months = 12
	}
	warranty := &models.Warranty{
		WarrantyNo:   generateWarrantyNo(),
		ProductID:    product.ID,
		UserID:       userID,
		OrderID:      &orderID,
		SerialNumber: product.SerialNumber,
		PurchaseDate: now,
		StartDate:    now,
		EndDate:      now.AddDate(0, months, 0),
		Status:       constants.WarrantyStatusActive,
	}
	if err := s.warrantyRepo.WithTx(tx).Create(warranty); err != nil {
		return nil, err
	}
	return warranty, nil
}

// GetWarranty 根据ID获取保修记录
func (s *WarrantyService) GetWarranty(id uint) (*models.Warranty, error) {
	warranty, err := s.warrantyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warranty == nil {
		return nil, ErrWarrantyNotFound
	}
	return warranty, nil
}

// GetWarrantyForUser 根据ID获取用户自己的保修记录
func (s *WarrantyService) GetWarrantyForUser(id, userID uint) (*models.Warranty, error) {
	warranty, err := s.GetWarranty(id)
	if err != nil {
		return nil, err
	}
	if warranty.UserID != userID {
		return nil, ErrWarrantyNotFound
	}
	return warranty, nil
}

// CheckWarranty 根据保修编号查询（公开查询入口）
func (s *WarrantyService) CheckWarranty(no string) (*models.Warranty, error) {
	warranty, err := s.warrantyRepo.GetByWarrantyNo(strings.ToUpper(strings.TrimSpace(no)))
	if err != nil {
		return nil, err
	}
	if warranty == nil {
		return nil, ErrWarrantyNotFound
	}
	return warranty, nil
}

// ListUserWarranties 获取用户保修记录列表
func (s *WarrantyService) ListUserWarranties(userID uint) ([]models.Warranty, error) {
	return s.warrantyRepo.ListByUser(userID)
}

// ListWarranties 获取保修记录列表（管理端）
func (s *WarrantyService) ListWarranties(filter repository.WarrantyListFilter) ([]models.Warranty, int64, error) {
	return s.warrantyRepo.List(filter)
}

// FileClaim 提交保修索赔：要求保修当前有效（active 且未过保）。
// 索赔不改变保修状态，只更新索赔标记、次数、时间与备注。
func (s *WarrantyService) FileClaim(id, userID uint, notes string) (*models.Warranty, error) {
	warranty, err := s.warrantyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warranty == nil || (userID != 0 && warranty.UserID != userID) {
		return nil, ErrWarrantyNotFound
	}

	now := time.Now()
	if !warranty.IsValid(now) {
		return nil, ErrWarrantyInvalid
	}

	warranty.ClaimFiled = true
	warranty.ClaimCount++
	warranty.LastClaimAt = &now
	warranty.Notes = notes
	if err := s.warrantyRepo.Update(warranty); err != nil {
		return nil, err
	}

	logger.Infow("warranty_claim_filed",
		"warranty_id", warranty.ID,
		"warranty_no", warranty.WarrantyNo,
		"claim_count", warranty.ClaimCount,
	)
	return warranty, nil
}

// VoidWarranty 作废保修记录（管理端操作或订单取消触发），终态。
func (s *WarrantyService) VoidWarranty(id uint) (*models.Warranty, error) {
	warranty, err := s.warrantyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warranty == nil {
		return nil, ErrWarrantyNotFound
	}
	if warranty.Status == constants.WarrantyStatusVoided {
		return warranty, nil
	}
	warranty.Status = constants.WarrantyStatusVoided
	if err := s.warrantyRepo.Update(warranty); err != nil {
		return nil, err
	}
	logger.Infow("warranty_voided", "warranty_id", warranty.ID, "warranty_no", warranty.WarrantyNo)
	return warranty, nil
}

// ListExpiringSoon 获取指定天数内到期的有效保修记录
func (s *WarrantyService) ListExpiringSoon(days int) ([]models.Warranty, error) {
	if days <= 0 {
		days = constants.WarrantyExpiringSoonDays
	}
	now := time.Now()
	return s.warrantyRepo.ListExpiringBetween(now, now.AddDate(0, 0, days))
}

// ExpireOverdue 过保巡检：将截止日期早于 before 且仍为 active 的记录置为 expired。
// 条件批量更新，重复执行无额外副作用；每日由后台任务触发。
func (s *WarrantyService) ExpireOverdue(before time.Time) (int64, error) {
	if before.IsZero() {
		before = time.Now()
	}
	count, err := s.warrantyRepo.ExpireOverdue(before)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Infow("warranty_sweep_done", "expired_count", count)
	} else {
		logger.Debugw("warranty_sweep_done", "expired_count", count)
	}
	return count, nil
}
