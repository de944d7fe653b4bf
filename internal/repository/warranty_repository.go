package repository

import (
	"errors"
	"time"

	"github.com/gearmart-next/internal/constants"
	"github.com/gearmart-next/internal/models"

	"gorm.io/gorm"
)

// WarrantyRepository 保修记录数据访问接口
type WarrantyRepository interface {
	Create(warranty *models.Warranty) error
	GetByID(id uint) (*models.Warranty, error)
	GetByWarrantyNo(no string) (*models.Warranty, error)
	ListByUser(userID uint) ([]models.Warranty, error)
	ListByOrder(orderID uint) ([]models.Warranty, error)
	List(filter WarrantyListFilter) ([]models.Warranty, int64, error)
	Update(warranty *models.Warranty) error
	UpdateStatusByOrder(orderID uint, from, to string) (int64, error)
	ExpireOverdue(before time.Time) (int64, error)
	ListExpiringBetween(from, to time.Time) ([]models.Warranty, error)
	WithTx(tx *gorm.DB) *GormWarrantyRepository
}

// GormWarrantyRepository GORM 实现
type GormWarrantyRepository struct {
	db *gorm.DB
}

// NewWarrantyRepository 创建保修记录仓库
func NewWarrantyRepository(db *gorm.DB) *GormWarrantyRepository {
	return &GormWarrantyRepository{db: db}
}

// WithTx 绑定事务
func (r *GormWarrantyRepository) WithTx(tx *gorm.DB) *GormWarrantyRepository {
	if tx == nil {
		return r
	}
	return &GormWarrantyRepository{db: tx}
}

// Create 创建保修记录
func (r *GormWarrantyRepository) Create(warranty *models.Warranty) error {
	return r.db.Create(warranty).Error
}

// GetByID 根据ID获取保修记录
func (r *GormWarrantyRepository) GetByID(id uint) (*models.Warranty, error) {
	var warranty models.Warranty
	if err := r.db.Preload("Product").First(&warranty, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &warranty, nil
}

// GetByWarrantyNo 根据保修编号获取保修记录
func (r *GormWarrantyRepository) GetByWarrantyNo(no string) (*models.Warranty, error) {
	var warranty models.Warranty
	err := r.db.Preload("Product").Where("warranty_no = ?", no).First(&warranty).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &warranty, nil
}

// ListByUser 获取用户保修记录
func (r *GormWarrantyRepository) ListByUser(userID uint) ([]models.Warranty, error) {
	var warranties []models.Warranty
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("id desc").Find(&warranties).Error; err != nil {
		return nil, err
	}
	return warranties, nil
}

// ListByOrder 获取订单关联的保修记录
func (r *GormWarrantyRepository) ListByOrder(orderID uint) ([]models.Warranty, error) {
	var warranties []models.Warranty
	if err := r.db.Where("order_id = ?", orderID).Find(&warranties).Error; err != nil {
		return nil, err
	}
	return warranties, nil
}

// List 获取保修记录列表
func (r *GormWarrantyRepository) List(filter WarrantyListFilter) ([]models.Warranty, int64, error) {
	var warranties []models.Warranty
	query := r.db.Model(&models.Warranty{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.OrderID > 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EndBefore != nil {
		query = query.Where("end_date < ?", *filter.EndBefore)
	}
	if filter.EndAfter != nil {
		query = query.Where("end_date >= ?", *filter.EndAfter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&warranties).Error; err != nil {
		return nil, 0, err
	}
	return warranties, total, nil
}

// Update 更新保修记录
func (r *GormWarrantyRepository) Update(warranty *models.Warranty) error {
	return r.db.Save(warranty).Error
}

// UpdateStatusByOrder 按订单批量更新保修状态
func (r *GormWarrantyRepository) UpdateStatusByOrder(orderID uint, from, to string) (int64, error) {
	result := r.db.Model(&models.Warranty{}).
		Where("order_id = ? AND status = ?", orderID, from).
		Update("status", to)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ExpireOverdue 将已过保且仍为 active 的记录批量置为 expired，返回更新行数。
// 条件更新保证重复执行无副作用。
func (r *GormWarrantyRepository) ExpireOverdue(before time.Time) (int64, error) {
	result := r.db.Model(&models.Warranty{}).
		Where("status = ? AND end_date < ?", constants.WarrantyStatusActive, before).
		Update("status", constants.WarrantyStatusExpired)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListExpiringBetween 获取在指定时间段内到期的有效保修记录
func (r *GormWarrantyRepository) ListExpiringBetween(from, to time.Time) ([]models.Warranty, error) {
	var warranties []models.Warranty
	err := r.db.Preload("Product").
		Where("status = ? AND end_date >= ? AND end_date <= ?", constants.WarrantyStatusActive, from, to).
		Order("end_date asc").
		Find(&warranties).Error
	if err != nil {
		return nil, err
	}
	return warranties, nil
}
