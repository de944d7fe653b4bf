package repository

import (
	"errors"

	"github.com/gearmart-next/internal/models"

	"gorm.io/gorm"
)

// InventoryRepository 库存档案数据访问接口
type InventoryRepository interface {
	GetByID(id uint) (*models.InventoryItem, error)
	GetBySerialNumber(serial string) (*models.InventoryItem, error)
	List(filter InventoryListFilter) ([]models.InventoryItem, int64, error)
	Create(item *models.InventoryItem) error
	Update(item *models.InventoryItem) error
	Delete(id uint) error
}

// GormInventoryRepository GORM 实现
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存档案仓库
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// GetByID 根据ID获取库存档案
func (r *GormInventoryRepository) GetByID(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetBySerialNumber 根据序列号获取库存档案
func (r *GormInventoryRepository) GetBySerialNumber(serial string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.Where("serial_number = ?", serial).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List 获取库存档案列表
func (r *GormInventoryRepository) List(filter InventoryListFilter) ([]models.InventoryItem, int64, error) {
	var items []models.InventoryItem
	query := r.db.Model(&models.InventoryItem{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		condition, args := buildKeywordCondition(r.db, filter.Search, "name", "serial_number")
		query = query.Where(condition, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create 创建库存档案
func (r *GormInventoryRepository) Create(item *models.InventoryItem) error {
	return r.db.Create(item).Error
}

// Update 更新库存档案
func (r *GormInventoryRepository) Update(item *models.InventoryItem) error {
	return r.db.Save(item).Error
}

// Delete 删除库存档案
func (r *GormInventoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.InventoryItem{}, id).Error
}
